package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "pdf files", cfg.Docs.Dir)
	assert.Equal(t, 300, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
	assert.Equal(t, "GOOGLE_API_KEY", cfg.Gemini.APIKeyEnv)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.ChatModel)
	assert.Equal(t, "text-embedding-004", cfg.Gemini.EmbeddingModel)
	assert.Equal(t, "English", cfg.Chat.DefaultLanguage)
	assert.False(t, cfg.Chat.EvaluationMode)
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("docs:\n  dir: /srv/noc-docs\nchunker:\n  chunk_size: 500\nchat:\n  default_language: German\n  evaluation_mode: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/noc-docs", cfg.Docs.Dir)
	assert.Equal(t, 500, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, "German", cfg.Chat.DefaultLanguage)
	assert.True(t, cfg.Chat.EvaluationMode)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.ChatModel)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("docs: [broken"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Docs.Dir = "elsewhere"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", loaded.Docs.Dir)
	assert.Equal(t, cfg.Chunker, loaded.Chunker)
}
