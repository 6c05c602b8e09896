package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ranops/internal/domain"
	"ranops/internal/prompt"
	"ranops/internal/router"
)

// Request carries one question through the answer pipeline.
type Request struct {
	Question string
	Messages []domain.Message
	Language string
	Category router.Category
}

// Result is the generated answer plus the chunk texts it was grounded on.
type Result struct {
	Text     string
	Contexts []string
}

// Pipeline produces retrieval-augmented answers: retrieve the nearest chunks,
// fill the category's template, call the model once. The caller is
// responsible for appending the result to the chat.
type Pipeline struct {
	retriever domain.Retriever
	llm       domain.LLM
	topK      int
	log       *zap.Logger
}

func New(retriever domain.Retriever, llm domain.LLM, topK int, log *zap.Logger) *Pipeline {
	if topK <= 0 {
		topK = 4
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{retriever: retriever, llm: llm, topK: topK, log: log}
}

// Answer runs the pipeline for one question. Any retrieval or model error
// propagates as a single generation-failed condition; nothing is retried.
func (p *Pipeline) Answer(ctx context.Context, req Request) (Result, error) {
	results, err := p.retriever.Retrieve(ctx, req.Question, p.topK)
	if err != nil {
		return Result{}, fmt.Errorf("generation failed: %w", err)
	}
	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Chunk.Text
	}

	text, err := p.llm.Generate(ctx, prompt.Build(req.Category, req.Language, req.Messages, contexts, req.Question))
	if err != nil {
		return Result{}, fmt.Errorf("generation failed: %w", err)
	}
	p.log.Info("answered question",
		zap.String("category", string(req.Category)),
		zap.String("language", req.Language),
		zap.Int("contexts", len(contexts)))
	return Result{Text: text, Contexts: contexts}, nil
}
