package chunker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"ranops/internal/domain"
)

// TokenCounter counts tokens in a piece of text. The chunker sizes its
// windows in the same unit the embedding model consumes.
type TokenCounter interface {
	Count(text string) int
}

// TikTokenCounter counts tokens with a tiktoken encoding.
type TikTokenCounter struct {
	enc *tiktoken.Tiktoken
}

func NewTikTokenCounter(encoding string) (*TikTokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get token encoding: %w", err)
	}
	return &TikTokenCounter{enc: enc}, nil
}

func (c *TikTokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// WordCounter is a cheap word-based token counter.
type WordCounter struct{}

func (WordCounter) Count(text string) int { return len(strings.Fields(text)) }

// TokenChunker splits documents into overlapping windows of a target token
// size. Chunk boundaries fall on sentence boundaries; the overlap carries
// whole sentences from the end of the previous chunk.
type TokenChunker struct {
	chunkSize    int
	chunkOverlap int
	counter      TokenCounter
	splitter     *regexp.Regexp
}

// NewTokenChunker creates a chunker targeting chunkSize tokens per chunk with
// chunkOverlap tokens shared between adjacent chunks, counted with the
// cl100k_base tiktoken encoding.
func NewTokenChunker(chunkSize, chunkOverlap int) (*TokenChunker, error) {
	counter, err := NewTikTokenCounter("cl100k_base")
	if err != nil {
		return nil, err
	}
	return NewTokenChunkerWithCounter(chunkSize, chunkOverlap, counter), nil
}

// NewTokenChunkerWithCounter creates a chunker with a custom token counter.
func NewTokenChunkerWithCounter(chunkSize, chunkOverlap int, counter TokenCounter) *TokenChunker {
	if chunkSize <= 0 {
		chunkSize = 300
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = min(50, chunkSize/6)
	}
	return &TokenChunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		counter:      counter,
		splitter:     regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

// Chunk splits a document into token-sized windows. Sentences are accumulated
// until the token budget is reached, then a new chunk starts with enough
// trailing sentences of the previous chunk to cover the overlap budget.
func (c *TokenChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	sentences := c.splitter.FindAllString(document.Content, -1)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(document.Content)
		if trimmed == "" {
			return nil, nil
		}
		sentences = []string{trimmed}
	}
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}

	var chunks []domain.Chunk
	start := 0
	tokens := 0
	idx := 0
	for i, sentence := range sentences {
		st := c.counter.Count(sentence)
		if tokens+st > c.chunkSize && tokens > 0 {
			chunks = append(chunks, c.makeChunk(document, sentences[start:i], idx))
			idx++
			overlapStart := i - c.overlapSentences(sentences, i)
			// the next chunk must start past the previous one
			if overlapStart <= start {
				overlapStart = start + 1
			}
			start = overlapStart
			tokens = 0
			for j := start; j < i; j++ {
				tokens += c.counter.Count(sentences[j])
			}
		}
		tokens += st
	}
	if start < len(sentences) {
		chunks = append(chunks, c.makeChunk(document, sentences[start:], idx))
	}
	return chunks, nil
}

func (c *TokenChunker) makeChunk(document domain.Document, sentences []string, idx int) domain.Chunk {
	return domain.Chunk{
		DocumentID: document.ID,
		ChunkID:    document.ID + ":" + strconv.Itoa(idx),
		Text:       strings.Join(sentences, " "),
		Source:     document.Path,
		Index:      idx,
	}
}

// overlapSentences counts how many sentences ending at boundary are needed to
// cover the overlap token budget.
func (c *TokenChunker) overlapSentences(sentences []string, boundary int) int {
	overlapTokens := 0
	n := 0
	for i := boundary - 1; i >= 0 && overlapTokens < c.chunkOverlap; i-- {
		overlapTokens += c.counter.Count(sentences[i])
		n++
	}
	return n
}
