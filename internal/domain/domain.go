package domain

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn. Immutable once appended to a chat.
type Message struct {
	Role    Role
	Content string
}

// Document represents a single source file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is an overlapping window of a document, the unit of retrieval.
// Chunks are produced once at index-build time and are read-only afterward.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Text       string
	Source     string
	Index      int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}

// LLM is an opaque text-completion service: prompt in, plain text out.
type LLM interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Retriever returns the chunks nearest to a free-text question.
type Retriever interface {
	Retrieve(ctx context.Context, question string, topK int) ([]SearchResult, error)
}
