package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ranops/internal/domain"
	"ranops/internal/eval"
	"ranops/internal/language"
	"ranops/internal/pipeline"
	"ranops/internal/router"
	"ranops/internal/session"
)

// view selects what the main panel shows.
type view int

const (
	viewChat view = iota
	viewDashboard
)

const (
	askPlaceholder         = "What would you like to know about NOC operations?"
	groundTruthPlaceholder = "Enter the ground truth answer and press Enter"
)

// Model is the Bubble Tea model for the chat application. All pipeline and
// evaluator calls are blocking and sequential; the UI re-renders after each
// state change.
type Model struct {
	state     *session.State
	pipeline  *pipeline.Pipeline
	evaluator *eval.Evaluator

	input    textinput.Model
	viewport viewport.Model
	view     view
	status   string
	ready    bool
}

// New creates the chat TUI over an initialized session.
func New(state *session.State, p *pipeline.Pipeline, e *eval.Evaluator) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = askPlaceholder
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		state:     state,
		pipeline:  p,
		evaluator: e,
		input:     ti,
		viewport:  vp,
		status:    "Ready. Always follow Quality Points.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + sidebar line, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.handleSubmit()
		case "ctrl+n":
			id := m.state.NewChat(m.state.Language)
			_ = m.state.SwitchChat(id)
			m.view = viewChat
			m.status = "Started a new chat."
			m.refresh()
			return m, nil
		case "ctrl+o":
			m.switchToNextChat()
			return m, nil
		case "ctrl+l":
			m.state.Language = language.Next(m.state.Language)
			m.status = "Language: " + m.state.Language + "  (" + strings.Join(language.Names(), " / ") + ")"
			return m, nil
		case "ctrl+e":
			m.state.SetEvaluationMode(!m.state.EvaluationMode)
			if m.state.EvaluationMode {
				m.status = "Evaluation mode on: you'll be asked for ground truth answers."
			} else {
				m.status = "Evaluation mode off."
			}
			m.refresh()
			return m, nil
		case "ctrl+v":
			if m.view == viewDashboard {
				m.view = viewChat
			} else {
				m.view = viewDashboard
			}
			m.refresh()
			return m, nil
		case "ctrl+s":
			m.exportRecords()
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit routes Enter either to the answer pipeline or, when an
// evaluation is pending, to the evaluator with the typed ground truth.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.view == viewDashboard {
		m.view = viewChat
		m.refresh()
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if m.state.Pending != nil {
		m.runEvaluation(text)
		m.input.SetValue("")
		m.refresh()
		return m, nil
	}
	if text == "" {
		return m, nil
	}
	m.askQuestion(text)
	m.input.SetValue("")
	m.refresh()
	return m, nil
}

// askQuestion runs one turn of the answer pipeline. On failure the turn is
// abandoned and prior history is preserved.
func (m *Model) askQuestion(question string) {
	chat := m.state.CurrentChat()
	m.state.AppendMessage(chat.ID, domain.Message{Role: domain.RoleUser, Content: question})
	m.state.UpdateTitle(chat.ID)

	category := router.Classify(question)
	m.status = "Processing your query..."
	res, err := m.pipeline.Answer(context.Background(), pipeline.Request{
		Question: question,
		Messages: chat.Messages,
		Language: m.state.Language,
		Category: category,
	})
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.state.AppendMessage(chat.ID, domain.Message{Role: domain.RoleAssistant, Content: res.Text})
	m.status = fmt.Sprintf("Answered (%s).", category)

	if m.state.EvaluationMode {
		m.state.Pending = &session.Pending{
			Question: question,
			Answer:   res.Text,
			Contexts: res.Contexts,
		}
		m.status = "Evaluation: provide the ground truth for this query."
	}
}

// runEvaluation scores the pending exchange with the given ground truth and
// appends the result to the evaluation log.
func (m *Model) runEvaluation(groundTruth string) {
	pend := m.state.Pending
	scores := m.evaluator.EvaluateRAG(context.Background(), pend.Question, pend.Answer, pend.Contexts, groundTruth)
	rec := eval.Record{
		Question:          pend.Question,
		Answer:            pend.Answer,
		RetrievedContexts: pend.Contexts,
		GroundTruth:       groundTruth,
		Scores:            scores,
		Timestamp:         time.Now(),
	}
	m.state.AddRecord(rec)
	m.state.Pending = nil
	m.state.LastRecord = &rec
	m.status = fmt.Sprintf("Evaluation completed. Overall score %.2f.", scores.Average)
}

func (m *Model) switchToNextChat() {
	chats := m.state.Chats()
	if len(chats) < 2 {
		m.status = "No other chats."
		return
	}
	for i, c := range chats {
		if c.ID == m.state.CurrentChatID {
			next := chats[(i+1)%len(chats)]
			_ = m.state.SwitchChat(next.ID)
			m.view = viewChat
			m.status = "Switched to: " + next.Title
			m.refresh()
			return
		}
	}
}

func (m *Model) exportRecords() {
	records := m.state.Records()
	if len(records) == 0 {
		m.status = "No evaluation results to export."
		return
	}
	name, err := eval.ExportFile(records, time.Now())
	if err != nil {
		m.status = "Export failed: " + err.Error()
		return
	}
	m.status = "Exported " + name
}

func (m *Model) refresh() {
	// the placeholder tracks the pending evaluation
	if m.state.Pending != nil {
		m.input.Placeholder = groundTruthPlaceholder
	} else {
		m.input.Placeholder = askPlaceholder
	}
	if m.view == viewDashboard {
		m.viewport.SetContent(m.renderDashboard())
	} else {
		m.viewport.SetContent(m.renderTranscript())
	}
	m.viewport.GotoBottom()
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("RAN Ops Assist 🔍📡")
	sidebar := m.renderSidebarLine()
	panel := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + sidebar + "\n" + panel + "\n" + input + "\n" + status
}

func (m Model) renderSidebarLine() string {
	chat := m.state.CurrentChat()
	parts := []string{
		"Chat: " + chat.Title,
		"Language: " + m.state.Language,
	}
	if m.state.EvaluationMode {
		parts = append(parts, "Evaluation: on")
	}
	parts = append(parts, "^N new  ^O switch  ^L language  ^E eval  ^V dashboard  ^S export")
	return sidebarStyle.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderTranscript() string {
	chat := m.state.CurrentChat()
	var b strings.Builder
	for _, msg := range chat.Messages {
		label := assistantLabelStyle.Render("Assistant")
		if msg.Role == domain.RoleUser {
			label = userLabelStyle.Render("You")
		}
		b.WriteString(label + "\n" + msg.Content + "\n\n")
	}
	if m.state.LastRecord != nil {
		b.WriteString(m.renderScores(*m.state.LastRecord))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderScores(rec eval.Record) string {
	var b strings.Builder
	b.WriteString(scoreHeaderStyle.Render("✅ Evaluation Results") + "\n")
	b.WriteString(fmt.Sprintf("Faithfulness: %.2f   Relevance: %.2f   Contextual Precision: %.2f\n",
		rec.Scores.Faithfulness, rec.Scores.Relevance, rec.Scores.ContextualPrecision))
	if rec.Scores.AnswerCorrectness != nil {
		b.WriteString(fmt.Sprintf("Answer Correctness: %.2f\n", *rec.Scores.AnswerCorrectness))
	}
	b.WriteString(fmt.Sprintf("Overall Score: %.2f\n", rec.Scores.Average))
	return b.String()
}

func (m Model) renderDashboard() string {
	records := m.state.Records()
	if len(records) == 0 {
		return "No evaluation results available. Run some evaluations first!"
	}
	s := eval.Summarize(records)

	var b strings.Builder
	b.WriteString(scoreHeaderStyle.Render("RAG System Evaluation Dashboard") + "\n\n")
	b.WriteString(fmt.Sprintf("Evaluations: %d\n", s.Count))
	b.WriteString(fmt.Sprintf("Avg. Faithfulness:         %.2f\n", s.MeanFaithfulness))
	b.WriteString(fmt.Sprintf("Avg. Relevance:            %.2f\n", s.MeanRelevance))
	b.WriteString(fmt.Sprintf("Avg. Contextual Precision: %.2f\n", s.MeanContextualPrecision))
	if s.CorrectnessCount > 0 {
		b.WriteString(fmt.Sprintf("Avg. Answer Correctness:   %.2f (%d records)\n", s.MeanAnswerCorrectness, s.CorrectnessCount))
	}
	b.WriteString(fmt.Sprintf("Avg. Overall Score:        %.2f\n\n", s.MeanAverage))

	b.WriteString("Individual results (newest first):\n")
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-16s  %-40s  %6s  %6s  %6s  %6s  %6s",
		"timestamp", "question", "faith", "relev", "prec", "corr", "avg")) + "\n")
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		corr := "     -"
		if r.Scores.AnswerCorrectness != nil {
			corr = fmt.Sprintf("%6.2f", *r.Scores.AnswerCorrectness)
		}
		b.WriteString(fmt.Sprintf("%-16s  %-40s  %6.2f  %6.2f  %6.2f  %s  %6.2f\n",
			r.Timestamp.Format("2006-01-02 15:04"),
			truncate(r.Question, 40),
			r.Scores.Faithfulness, r.Scores.Relevance, r.Scores.ContextualPrecision,
			corr, r.Scores.Average))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

var (
	headerStyle         = lipgloss.NewStyle().Bold(true)
	sidebarStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	transcriptBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	scoreHeaderStyle    = lipgloss.NewStyle().Bold(true)
	tableHeaderStyle    = lipgloss.NewStyle().Underline(true)
)

