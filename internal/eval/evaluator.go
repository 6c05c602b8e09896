package eval

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"ranops/internal/domain"
)

// Scores holds the component metrics of one evaluation. AnswerCorrectness is
// only present when a ground truth was supplied; Average is the mean of
// whichever scores were computed, so its denominator is 3 or 4 depending on
// ground-truth presence and averages are not comparable across the two cases.
type Scores struct {
	Faithfulness        float64
	Relevance           float64
	ContextualPrecision float64
	AnswerCorrectness   *float64
	Average             float64
}

// Record is one completed evaluation, appended to the session's append-only
// log. Records are never mutated or removed.
type Record struct {
	Question          string
	Answer            string
	RetrievedContexts []string
	GroundTruth       string
	Scores            Scores
	Timestamp         time.Time
}

// Evaluator scores RAG exchanges by sending fixed rubric prompts to the
// language model, one metric at a time, and parsing a bare numeric reply.
type Evaluator struct {
	llm domain.LLM
	log *zap.Logger
}

func New(llm domain.LLM, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{llm: llm, log: log}
}

const faithfulnessPrompt = `You are a critical evaluator assessing the faithfulness of an answer to provided context.

Context:
%s

Answer:
%s

Task:
On a scale of 0 to 1, where 1 means the answer is completely faithful to the context and 0 means it contains hallucinations or unsupported information:
1. Analyze each claim or statement in the answer
2. Check if it's directly supported by the context
3. Determine if there are any unsupported extrapolations
4. Provide a single numerical score between 0 and 1

Return only the numerical score without any explanation.`

const relevancePrompt = `You are evaluating the relevance of retrieved documents to a question.

Question:
%s

Retrieved documents:
%s

Task:
On a scale of 0 to 1, where 1 means the documents are highly relevant to answering the question and 0 means they are completely irrelevant:
1. Assess how well the documents address the information needs in the question
2. Consider whether key information required to answer the question is present
3. Ignore extraneous information if the core relevant content is present
4. Provide a single numerical score between 0 and 1

Return only the numerical score without any explanation.`

const contextualPrecisionPrompt = `You are evaluating the contextual precision of an answer.

Question:
%s

Answer:
%s

Contexts:
%s

Task:
On a scale of 0 to 1, where 1 means the answer efficiently uses only relevant parts of the context and 0 means it includes lots of irrelevant information:
1. Determine how much of the context used in the answer was directly relevant to the question
2. Check if the answer contains information from the context that doesn't help answer the question
3. Assess whether the answer is concise while covering the necessary information
4. Provide a single numerical score between 0 and 1

Return only the numerical score without any explanation.`

const answerCorrectnessPrompt = `You are evaluating the correctness of an answer against a known ground truth.

Answer to evaluate:
%s

Ground truth:
%s

Task:
On a scale of 0 to 1, where 1 means the answer completely matches the ground truth in meaning and information and 0 means it's completely incorrect:
1. Compare the key information points in both texts
2. Check for any contradictions or incorrect information
3. Consider semantic equivalence rather than exact wording
4. Provide a single numerical score between 0 and 1

Return only the numerical score without any explanation.`

// Faithfulness scores how much of the answer is supported by the contexts only.
func (e *Evaluator) Faithfulness(ctx context.Context, answer string, contexts []string) float64 {
	return e.score(ctx, "faithfulness", fmt.Sprintf(faithfulnessPrompt, strings.Join(contexts, " "), answer))
}

// Relevance scores how well the retrieved contexts address the question.
func (e *Evaluator) Relevance(ctx context.Context, question string, contexts []string) float64 {
	return e.score(ctx, "relevance", fmt.Sprintf(relevancePrompt, question, strings.Join(contexts, " ")))
}

// ContextualPrecision scores how well the answer avoids irrelevant retrieved material.
func (e *Evaluator) ContextualPrecision(ctx context.Context, question, answer string, contexts []string) float64 {
	return e.score(ctx, "contextual_precision", fmt.Sprintf(contextualPrecisionPrompt, question, answer, strings.Join(contexts, " ")))
}

// AnswerCorrectness scores the answer against a supplied reference answer.
func (e *Evaluator) AnswerCorrectness(ctx context.Context, answer, groundTruth string) float64 {
	return e.score(ctx, "answer_correctness", fmt.Sprintf(answerCorrectnessPrompt, answer, groundTruth))
}

// score runs one rubric prompt and parses the reply as a float clamped to
// [0,1]. Model errors and non-numeric replies are non-fatal: they are logged
// and replaced by a neutral 0.5 so scoring never blocks the UI.
func (e *Evaluator) score(ctx context.Context, metric, p string) float64 {
	resp, err := e.llm.Generate(ctx, p)
	if err != nil {
		e.log.Warn("scoring call failed", zap.String("metric", metric), zap.Error(err))
		return 0.5
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(resp), 64)
	if err != nil {
		e.log.Warn("failed to parse score",
			zap.String("metric", metric),
			zap.String("response", strings.TrimSpace(resp)))
		return 0.5
	}
	return clamp(v)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// EvaluateRAG runs the three unconditional metrics, plus answer correctness
// when a ground truth is supplied. Calls are issued and awaited in turn.
func (e *Evaluator) EvaluateRAG(ctx context.Context, question, answer string, contexts []string, groundTruth string) Scores {
	s := Scores{
		Faithfulness:        e.Faithfulness(ctx, answer, contexts),
		Relevance:           e.Relevance(ctx, question, contexts),
		ContextualPrecision: e.ContextualPrecision(ctx, question, answer, contexts),
	}
	sum := s.Faithfulness + s.Relevance + s.ContextualPrecision
	n := 3.0
	if groundTruth != "" {
		c := e.AnswerCorrectness(ctx, answer, groundTruth)
		s.AnswerCorrectness = &c
		sum += c
		n++
	}
	s.Average = sum / n
	return s
}
