package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranops/internal/domain"
	"ranops/internal/eval"
	"ranops/internal/language"
)

func TestNewStateSeedsWelcome(t *testing.T) {
	s := NewState("Romanian")
	chat := s.CurrentChat()
	require.NotNil(t, chat)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, domain.RoleAssistant, chat.Messages[0].Role)
	assert.Equal(t, language.Supported["Romanian"].Welcome, chat.Messages[0].Content)
	assert.Equal(t, "New Chat", chat.Title)
}

func TestNewStateUnknownLanguageFallsBack(t *testing.T) {
	s := NewState("Klingon")
	assert.Equal(t, language.Default, s.Language)
	assert.Equal(t, language.Supported[language.Default].Welcome, s.CurrentChat().Messages[0].Content)
}

func TestUpdateTitle(t *testing.T) {
	tests := []struct {
		name  string
		first string
		want  string
	}{
		{"short message kept whole", "RF unit down", "RF unit down"},
		{"exactly thirty characters", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"long message truncated", strings.Repeat("a", 31), strings.Repeat("a", 30) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState("English")
			id := s.CurrentChatID
			s.AppendMessage(id, domain.Message{Role: domain.RoleUser, Content: tt.first})
			s.UpdateTitle(id)
			assert.Equal(t, tt.want, s.Chat(id).Title)
		})
	}
}

func TestUpdateTitleSetOnce(t *testing.T) {
	s := NewState("English")
	id := s.CurrentChatID
	s.AppendMessage(id, domain.Message{Role: domain.RoleUser, Content: "first question"})
	s.UpdateTitle(id)
	s.AppendMessage(id, domain.Message{Role: domain.RoleUser, Content: "second question"})
	s.UpdateTitle(id)
	assert.Equal(t, "first question", s.Chat(id).Title)
}

func TestUpdateTitleNoUserMessage(t *testing.T) {
	s := NewState("English")
	id := s.CurrentChatID
	s.UpdateTitle(id)
	assert.Equal(t, "New Chat", s.Chat(id).Title)
}

func TestSwitchChatResetsEvaluation(t *testing.T) {
	s := NewState("English")
	first := s.CurrentChatID
	s.Pending = &Pending{Question: "q", Answer: "a"}
	s.LastRecord = &eval.Record{}

	second := s.NewChat("English")
	require.NoError(t, s.SwitchChat(second))
	assert.Equal(t, second, s.CurrentChatID)
	assert.Nil(t, s.Pending)
	assert.Nil(t, s.LastRecord)

	require.NoError(t, s.SwitchChat(first))
	assert.Error(t, s.SwitchChat("nope"))
}

func TestSetEvaluationModeResets(t *testing.T) {
	s := NewState("English")
	s.Pending = &Pending{Question: "q"}
	s.SetEvaluationMode(true)
	assert.True(t, s.EvaluationMode)
	assert.Nil(t, s.Pending)
}

func TestChatsNewestFirst(t *testing.T) {
	s := NewState("English")
	first := s.CurrentChatID
	second := s.NewChat("English")
	third := s.NewChat("German")

	chats := s.Chats()
	require.Len(t, chats, 3)
	assert.Equal(t, third, chats[0].ID)
	assert.Equal(t, second, chats[1].ID)
	assert.Equal(t, first, chats[2].ID)
}

func TestRecordsAppendOnly(t *testing.T) {
	s := NewState("English")
	assert.Empty(t, s.Records())
	s.AddRecord(eval.Record{Question: "q1", Timestamp: time.Now()})
	s.AddRecord(eval.Record{Question: "q2", Timestamp: time.Now()})
	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "q1", recs[0].Question)
	assert.Equal(t, "q2", recs[1].Question)
}
