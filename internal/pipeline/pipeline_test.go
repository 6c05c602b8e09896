package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranops/internal/domain"
	"ranops/internal/router"
)

// echoLLM returns the prompt it was given, so tests can inspect what the
// pipeline sent to the model.
type echoLLM struct{ err error }

func (e echoLLM) Name() string { return "echo" }

func (e echoLLM) Generate(_ context.Context, prompt string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return prompt, nil
}

type fakeRetriever struct {
	chunks []domain.Chunk
	err    error
	gotK   int
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string, topK int) ([]domain.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotK = topK
	out := make([]domain.SearchResult, len(f.chunks))
	for i, c := range f.chunks {
		out[i] = domain.SearchResult{Chunk: c, Score: 1 - float64(i)*0.1}
	}
	return out, nil
}

func TestAnswerAlarmQuestionUsesAlarmTemplate(t *testing.T) {
	question := "The RF unit is showing a failure alarm"
	category := router.Classify(question)
	require.Equal(t, router.CategoryAlarm, category)

	ret := &fakeRetriever{chunks: []domain.Chunk{
		{Text: "RF units fail on power loss."},
		{Text: "Check the INC queue first."},
	}}
	p := New(ret, echoLLM{}, 4, nil)

	res, err := p.Answer(context.Background(), Request{
		Question: question,
		Messages: []domain.Message{
			{Role: domain.RoleAssistant, Content: "Welcome!"},
			{Role: domain.RoleUser, Content: question},
		},
		Language: "English",
		Category: category,
	})
	require.NoError(t, err)

	for _, marker := range []string{
		"Response:",
		"Explanation of the issue:",
		"Recommended steps/actions:",
		"Quality steps to follow:",
	} {
		assert.Contains(t, res.Text, marker)
	}
	assert.Contains(t, res.Text, question)
	assert.Equal(t, []string{"RF units fail on power loss.", "Check the INC queue first."}, res.Contexts)
	assert.Equal(t, 4, ret.gotK)
}

func TestAnswerGeneralQuestion(t *testing.T) {
	ret := &fakeRetriever{chunks: []domain.Chunk{{Text: "context"}}}
	p := New(ret, echoLLM{}, 2, nil)

	res, err := p.Answer(context.Background(), Request{
		Question: "how are you today?",
		Language: "Romanian",
		Category: router.CategoryGeneral,
	})
	require.NoError(t, err)
	assert.Contains(t, res.Text, "helpful NOC assistant")
	assert.Contains(t, res.Text, "Romanian")
	assert.NotContains(t, res.Text, "Quality steps to follow:")
}

func TestAnswerRetrieverError(t *testing.T) {
	p := New(&fakeRetriever{err: errors.New("index offline")}, echoLLM{}, 4, nil)
	_, err := p.Answer(context.Background(), Request{Question: "q", Category: router.CategoryGeneral})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation failed")
}

func TestAnswerModelError(t *testing.T) {
	p := New(&fakeRetriever{}, echoLLM{err: errors.New("timeout")}, 4, nil)
	_, err := p.Answer(context.Background(), Request{Question: "q", Category: router.CategoryAlarm})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation failed")
}
