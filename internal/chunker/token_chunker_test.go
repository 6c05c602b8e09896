package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranops/internal/domain"
)

func testDocument(sentences int) domain.Document {
	var b strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&b, "Sentence number %d has exactly seven words. ", i)
	}
	return domain.Document{ID: "doc1", Path: "docs/a.txt", Content: b.String()}
}

func TestChunkSplitsWithOverlap(t *testing.T) {
	c := NewTokenChunkerWithCounter(21, 7, WordCounter{})
	chunks, err := c.Chunk(testDocument(9))
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, ch := range chunks {
		assert.Equal(t, "doc1", ch.DocumentID)
		assert.Equal(t, fmt.Sprintf("doc1:%d", i), ch.ChunkID)
		assert.Equal(t, "docs/a.txt", ch.Source)
		assert.Equal(t, i, ch.Index)
	}
	// each boundary repeats the last sentence of the previous chunk
	for i := 1; i < len(chunks); i++ {
		prev := strings.Split(chunks[i-1].Text, ". ")
		last := prev[len(prev)-1]
		assert.Contains(t, chunks[i].Text, strings.TrimSuffix(last, "."))
	}
}

func TestChunkRespectsTokenBudget(t *testing.T) {
	c := NewTokenChunkerWithCounter(21, 0, WordCounter{})
	chunks, err := c.Chunk(testDocument(10))
	require.NoError(t, err)
	for _, ch := range chunks {
		assert.LessOrEqual(t, WordCounter{}.Count(ch.Text), 21)
	}
}

func TestChunkRepairsOverlapForSmallSize(t *testing.T) {
	// overlap 30 is wider than the 20-token budget and must be repaired,
	// not left at a value that stalls the scan and duplicates text
	c := NewTokenChunkerWithCounter(20, 30, WordCounter{})
	chunks, err := c.Chunk(testDocument(12))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, ch := range chunks {
		assert.LessOrEqual(t, WordCounter{}.Count(ch.Text), 20)
	}
	assert.Contains(t, chunks[len(chunks)-1].Text, "Sentence number 11")
}

func TestChunkOverlapNearSizeStillAdvances(t *testing.T) {
	c := NewTokenChunkerWithCounter(21, 20, WordCounter{})
	chunks, err := c.Chunk(testDocument(9))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, ch := range chunks {
		assert.LessOrEqual(t, WordCounter{}.Count(ch.Text), 21)
	}
	assert.Contains(t, chunks[len(chunks)-1].Text, "Sentence number 8")
}

func TestChunkEmptyDocument(t *testing.T) {
	c := NewTokenChunkerWithCounter(300, 50, WordCounter{})
	chunks, err := c.Chunk(domain.Document{ID: "d", Content: "   \n  "})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkTextWithoutPunctuation(t *testing.T) {
	c := NewTokenChunkerWithCounter(300, 50, WordCounter{})
	chunks, err := c.Chunk(domain.Document{ID: "d", Content: "no punctuation at all"})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "no punctuation at all", chunks[0].Text)
}

func TestChunkSingleChunkDocument(t *testing.T) {
	c := NewTokenChunkerWithCounter(300, 50, WordCounter{})
	chunks, err := c.Chunk(testDocument(3))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
}
