package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ranops/internal/domain"
	"ranops/internal/eval"
	"ranops/internal/language"
)

// Chat is one conversation thread: an ordered list of role-tagged messages.
// Chats are never deleted during a session.
type Chat struct {
	ID        string
	Title     string
	CreatedAt time.Time
	Messages  []domain.Message

	titleSet bool
}

// Pending is an exchange awaiting a ground truth in evaluation mode.
type Pending struct {
	Question string
	Answer   string
	Contexts []string
}

// State is the aggregate root for one interactive session: selected
// language, chat threads, evaluation flags and the append-only record log.
// It is scoped to a single session and passed explicitly through the call
// chain instead of living in a global map.
type State struct {
	Language       string
	CurrentChatID  string
	EvaluationMode bool

	// Pending is the at-most-one evaluation awaiting ground truth. While it
	// is non-nil in evaluation mode, no new input is accepted.
	Pending *Pending
	// LastRecord holds a just-completed evaluation for display.
	LastRecord *eval.Record

	chats   map[string]*Chat
	order   []string
	records []eval.Record
	now     func() time.Time
}

// NewState initializes a session with defaults and a first chat seeded with
// the language's welcome message.
func NewState(lang string) *State {
	s := &State{
		Language: lang,
		chats:    make(map[string]*Chat),
		now:      time.Now,
	}
	if _, ok := language.Supported[lang]; !ok {
		s.Language = language.Default
	}
	s.CurrentChatID = s.NewChat(s.Language)
	return s
}

func newChatID() string {
	return uuid.NewString()[:8]
}

// NewChat creates a chat seeded with the language's welcome message and
// returns its ID. The caller decides whether to switch to it.
func (s *State) NewChat(lang string) string {
	id := newChatID()
	s.chats[id] = &Chat{
		ID:        id,
		Title:     "New Chat",
		CreatedAt: s.now(),
		Messages: []domain.Message{
			{Role: domain.RoleAssistant, Content: language.Welcome(lang)},
		},
	}
	s.order = append(s.order, id)
	return id
}

// SwitchChat makes the given chat current and clears any in-flight
// evaluation state.
func (s *State) SwitchChat(id string) error {
	if _, ok := s.chats[id]; !ok {
		return fmt.Errorf("unknown chat %s", id)
	}
	s.CurrentChatID = id
	s.ResetEvaluation()
	return nil
}

// Chat returns the chat with the given ID, or nil.
func (s *State) Chat(id string) *Chat { return s.chats[id] }

// CurrentChat returns the active chat.
func (s *State) CurrentChat() *Chat { return s.chats[s.CurrentChatID] }

// Chats returns all chats, newest first.
func (s *State) Chats() []*Chat {
	out := make([]*Chat, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.chats[s.order[i]])
	}
	return out
}

// AppendMessage appends a message to the given chat. Messages are immutable
// once appended.
func (s *State) AppendMessage(chatID string, msg domain.Message) {
	if c, ok := s.chats[chatID]; ok {
		c.Messages = append(c.Messages, msg)
	}
}

// UpdateTitle sets the chat title from its first user message, truncated to
// 30 characters plus an ellipsis if longer. The title is set exactly once;
// later calls are no-ops.
func (s *State) UpdateTitle(chatID string) {
	c, ok := s.chats[chatID]
	if !ok || c.titleSet {
		return
	}
	for _, msg := range c.Messages {
		if msg.Role == domain.RoleUser {
			title := msg.Content
			if len([]rune(title)) > 30 {
				title = string([]rune(title)[:30]) + "..."
			}
			c.Title = title
			c.titleSet = true
			return
		}
	}
}

// SetEvaluationMode toggles evaluation mode and clears in-flight state.
func (s *State) SetEvaluationMode(on bool) {
	s.EvaluationMode = on
	s.ResetEvaluation()
}

// ResetEvaluation clears the in-flight evaluation fields. Called on chat
// switch, new chat and evaluation-mode toggle.
func (s *State) ResetEvaluation() {
	s.Pending = nil
	s.LastRecord = nil
}

// AddRecord appends a completed evaluation to the append-only log.
func (s *State) AddRecord(r eval.Record) {
	s.records = append(s.records, r)
}

// Records returns the accumulated evaluation log, oldest first.
func (s *State) Records() []eval.Record { return s.records }
