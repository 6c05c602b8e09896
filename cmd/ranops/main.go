package main

import (
	"context"
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"ranops/internal/config"
	"ranops/internal/embedding"
	"ranops/internal/eval"
	"ranops/internal/indexer"
	"ranops/internal/llm"
	"ranops/internal/logging"
	"ranops/internal/pipeline"
	"ranops/internal/session"
	"ranops/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/ranops/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewFileLogger(cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	timeout := time.Duration(cfg.Gemini.TimeoutSecs) * time.Second

	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL:           cfg.Gemini.BaseURL,
		APIKeyEnv:         cfg.Gemini.APIKeyEnv,
		Model:             cfg.Gemini.EmbeddingModel,
		Timeout:           timeout,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	})
	if err != nil {
		log.Fatalf("embedder init failed: %v", err)
	}

	model, err := llm.NewClient(llm.Config{
		BaseURL:           cfg.Gemini.BaseURL,
		APIKeyEnv:         cfg.Gemini.APIKeyEnv,
		Model:             cfg.Gemini.ChatModel,
		Timeout:           timeout,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	})
	if err != nil {
		log.Fatalf("llm init failed: %v", err)
	}

	builder := indexer.NewBuilder(embedder, logger)
	cache := indexer.NewCache(builder.Build)
	idx, err := cache.Get(context.Background(), indexer.Params{
		Dir:          cfg.Docs.Dir,
		ChunkSize:    cfg.Chunker.ChunkSize,
		ChunkOverlap: cfg.Chunker.ChunkOverlap,
	})
	if err != nil {
		log.Fatalf("index build failed: %v", err)
	}

	state := session.NewState(cfg.Chat.DefaultLanguage)
	state.SetEvaluationMode(cfg.Chat.EvaluationMode)

	m := tui.New(
		state,
		pipeline.New(idx, model, cfg.Retrieval.TopK, logger),
		eval.New(model, logger),
	)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
