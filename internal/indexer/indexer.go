package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ranops/internal/chunker"
	"ranops/internal/domain"
	"ranops/internal/parser"
	"ranops/internal/vectorstore"
)

// Params identify one index build. Two builds with equal Params produce the
// same index, which is what the cache keys on.
type Params struct {
	Dir          string
	ChunkSize    int
	ChunkOverlap int
}

// Index is a built similarity index over a document directory. The chunk
// slice is shared with every caller and must not be mutated.
type Index struct {
	embedder domain.Embedder
	store    domain.VectorStore
	chunks   []domain.Chunk
}

// Chunks returns the chunks the index was built from, in document order.
func (ix *Index) Chunks() []domain.Chunk { return ix.chunks }

// Retrieve embeds the question and returns the topK nearest chunks.
func (ix *Index) Retrieve(ctx context.Context, question string, topK int) ([]domain.SearchResult, error) {
	vec, err := ix.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	return ix.store.Search(vec, topK)
}

// Builder constructs indexes: load documents, chunk, embed, upsert.
type Builder struct {
	embedder domain.Embedder
	log      *zap.Logger

	// Counter overrides the token counter used for chunk sizing.
	// Left nil, chunks are sized with the tiktoken cl100k_base encoding.
	Counter chunker.TokenCounter
}

func NewBuilder(embedder domain.Embedder, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{embedder: embedder, log: log}
}

// Build loads every document under p.Dir, splits it into overlapping token
// windows, embeds each chunk and indexes the vectors. A missing or empty
// directory fails the build; the application cannot proceed without an index.
func (b *Builder) Build(ctx context.Context, p Params) (*Index, error) {
	docs, err := parser.LoadDir(p.Dir)
	if err != nil {
		return nil, err
	}
	var ch domain.Chunker
	if b.Counter != nil {
		ch = chunker.NewTokenChunkerWithCounter(p.ChunkSize, p.ChunkOverlap, b.Counter)
	} else {
		ch, err = chunker.NewTokenChunker(p.ChunkSize, p.ChunkOverlap)
		if err != nil {
			return nil, err
		}
	}

	var allChunks []domain.Chunk
	for _, d := range docs {
		chunks, err := ch.Chunk(d)
		if err != nil {
			return nil, err
		}
		allChunks = append(allChunks, chunks...)
	}
	if len(allChunks) == 0 {
		return nil, fmt.Errorf("no content extracted from %s", p.Dir)
	}
	b.log.Info("chunked documents",
		zap.String("dir", p.Dir),
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(allChunks)))

	vectors := make([][]float64, len(allChunks))
	for i := range allChunks {
		vec, err := b.embedder.Embed(ctx, allChunks[i].Text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %s: %w", allChunks[i].ChunkID, err)
		}
		vectors[i] = vec
	}

	store := vectorstore.NewMemoryStore()
	if err := store.Init(len(vectors[0])); err != nil {
		return nil, err
	}
	if err := store.Upsert(allChunks, vectors); err != nil {
		return nil, err
	}
	b.log.Info("index built", zap.String("dir", p.Dir), zap.Int("vectors", len(vectors)))
	return &Index{embedder: b.embedder, store: store, chunks: allChunks}, nil
}
