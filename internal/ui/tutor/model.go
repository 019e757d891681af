package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/tutor/internal/api"
	"github.com/fragmede/tutor/internal/config"
	"github.com/fragmede/tutor/internal/render"
	"github.com/fragmede/tutor/internal/ui/messages"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Padding(0, 1)
	youStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")).Bold(true)
	tutorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C5CFF")).Bold(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")).Bold(true)
	wrongStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	optionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

const summaryRole = "summary"

type (
	chatLoadedMsg struct {
		Chat *api.Chat
		Err  error
	}
	replyMsg struct {
		Reply *api.ChatReply
		Err   error
	}
	summaryMsg struct {
		Summary string
		Err     error
	}
	quizMsg struct {
		Quiz *api.Quiz
		Err  error
	}
	quizSavedMsg struct {
		XP  int
		Err error
	}
)

// Model is the protected tutor page: a chat transcript with a composer,
// and a quiz mode that takes over the page while it runs.
type Model struct {
	viewport viewport.Model
	input    textinput.Model
	client   *api.Client
	cfg      config.Config
	topic    api.Topic
	chatID   string
	history  []api.ChatMessage
	busy     string
	quiz     *Quiz
	quizDone string
	width    int
	height   int
}

// New creates the tutor page for topic. A non-empty chatID resumes that
// conversation.
func New(cfg config.Config, client *api.Client, topic api.Topic, chatID string) Model {
	input := textinput.New()
	input.Placeholder = "Ask your tutor about " + topic.Name + "..."
	input.Prompt = "> "
	input.Focus()

	vp := viewport.New(0, 0)

	m := Model{
		viewport: vp,
		input:    input,
		client:   client,
		cfg:      cfg,
		topic:    topic,
		chatID:   chatID,
	}
	if chatID != "" {
		m.busy = "Loading conversation..."
	}
	return m
}

// Init loads the resumed conversation, if any.
func (m Model) Init() tea.Cmd {
	if m.chatID == "" {
		return nil
	}
	client := m.client
	id := m.chatID
	return func() tea.Msg {
		chat, err := client.GetChat(context.Background(), id)
		return chatLoadedMsg{Chat: chat, Err: err}
	}
}

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.input.Width = w - 4
	m.viewport.Height = h - 4
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.rebuildContent()
}

// Topic returns the topic being studied.
func (m Model) Topic() api.Topic { return m.topic }

// ChatID returns the conversation ID, empty until the first reply.
func (m Model) ChatID() string { return m.chatID }

// InQuiz reports whether a quiz owns the keyboard.
func (m Model) InQuiz() bool { return m.quiz != nil }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatLoadedMsg:
		m.busy = ""
		if msg.Err != nil {
			m.chatID = ""
			m.rebuildContent()
			return m, status("Could not load conversation: "+msg.Err.Error(), true)
		}
		m.history = msg.Chat.Messages
		m.rebuildContent()
		m.viewport.GotoBottom()
		return m, nil

	case replyMsg:
		m.busy = ""
		if msg.Err != nil {
			m.rebuildContent()
			return m, status("Tutor did not answer: "+msg.Err.Error(), true)
		}
		m.chatID = msg.Reply.ChatID
		m.history = append(m.history, api.ChatMessage{
			Role:      api.RoleAssistant,
			Content:   msg.Reply.Response,
			Timestamp: msg.Reply.Timestamp,
		})
		m.rebuildContent()
		m.viewport.GotoBottom()
		return m, nil

	case summaryMsg:
		m.busy = ""
		if msg.Err != nil {
			m.rebuildContent()
			return m, status("Could not summarize: "+msg.Err.Error(), true)
		}
		m.history = append(m.history, api.ChatMessage{Role: summaryRole, Content: msg.Summary})
		m.rebuildContent()
		m.viewport.GotoBottom()
		return m, nil

	case quizMsg:
		m.busy = ""
		if msg.Err != nil {
			m.rebuildContent()
			return m, status("Could not generate quiz: "+msg.Err.Error(), true)
		}
		if len(msg.Quiz.Questions) == 0 {
			m.rebuildContent()
			return m, status("The tutor returned an empty quiz", true)
		}
		m.quiz = NewQuiz(msg.Quiz.Questions)
		m.quizDone = ""
		m.input.Blur()
		m.rebuildContent()
		m.viewport.GotoTop()
		return m, nil

	case quizSavedMsg:
		if msg.Err != nil {
			m.quizDone += "\n\nResult not saved: " + msg.Err.Error()
			m.rebuildContent()
			return m, status("Could not save quiz result", true)
		}
		m.quizDone += fmt.Sprintf("\n\n+%d XP earned", msg.XP)
		m.rebuildContent()
		return m, status(fmt.Sprintf("Quiz saved, +%d XP", msg.XP), false)

	case tea.KeyMsg:
		if m.quiz != nil {
			return m.updateQuiz(msg)
		}
		switch msg.String() {
		case "enter":
			return m.send()
		case "ctrl+q":
			return m.startQuiz()
		case "ctrl+s":
			return m.summarize()
		case "pgdown", "ctrl+d":
			m.viewport.HalfViewDown()
			return m, nil
		case "pgup", "ctrl+u":
			m.viewport.HalfViewUp()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) send() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.busy != "" {
		return m, nil
	}
	m.input.Reset()
	m.history = append(m.history, api.ChatMessage{
		Role:      api.RoleUser,
		Content:   text,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
	m.busy = "Tutor is thinking..."
	m.rebuildContent()
	m.viewport.GotoBottom()

	client := m.client
	topic := m.topic.Name
	chatID := m.chatID
	return m, func() tea.Msg {
		reply, err := client.Chat(context.Background(), topic, text, chatID)
		return replyMsg{Reply: reply, Err: err}
	}
}

func (m Model) startQuiz() (Model, tea.Cmd) {
	if m.busy != "" {
		return m, nil
	}
	m.busy = "Generating quiz..."
	m.rebuildContent()

	client := m.client
	topic := m.topic.Name
	n := m.cfg.QuizQuestions
	return m, func() tea.Msg {
		quiz, err := client.GenerateQuiz(context.Background(), topic, n)
		return quizMsg{Quiz: quiz, Err: err}
	}
}

func (m Model) summarize() (Model, tea.Cmd) {
	if m.busy != "" {
		return m, nil
	}
	transcript := m.transcript()
	if transcript == "" {
		return m, status("Nothing to summarize yet", false)
	}
	m.busy = "Summarizing..."
	m.rebuildContent()

	client := m.client
	return m, func() tea.Msg {
		summary, err := client.Summarize(context.Background(), transcript)
		return summaryMsg{Summary: summary, Err: err}
	}
}

func (m Model) updateQuiz(msg tea.KeyMsg) (Model, tea.Cmd) {
	q := m.quiz
	key := msg.String()

	if key == "esc" {
		m.endQuiz()
		return m, status("Quiz abandoned", false)
	}

	if q.Done() {
		if key == "enter" {
			m.endQuiz()
		}
		return m, nil
	}

	if !q.Answered() {
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			q.Answer(int(key[0] - '1'))
			m.rebuildContent()
		}
		return m, nil
	}

	if key != "enter" && key != "n" {
		return m, nil
	}
	q.Next()
	if !q.Done() {
		m.rebuildContent()
		return m, nil
	}

	m.quizDone = fmt.Sprintf("Quiz complete: %d/%d (%s)", q.Score(), q.Len(), render.Percent(q.Score(), q.Len()))
	m.rebuildContent()

	client := m.client
	topic := m.topic.Name
	score, total, questions := q.Score(), q.Len(), q.Questions()
	return m, func() tea.Msg {
		xp, err := client.SaveQuizResult(context.Background(), topic, score, total, questions)
		return quizSavedMsg{XP: xp, Err: err}
	}
}

func (m *Model) endQuiz() {
	m.quiz = nil
	m.quizDone = ""
	m.input.Focus()
	m.rebuildContent()
	m.viewport.GotoBottom()
}

// transcript flattens the conversation for summarizing.
func (m Model) transcript() string {
	var sb strings.Builder
	for _, msg := range m.history {
		switch msg.Role {
		case api.RoleUser:
			sb.WriteString("Student: ")
		case api.RoleAssistant:
			sb.WriteString("Tutor: ")
		default:
			continue
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

// View renders the tutor page.
func (m Model) View() string {
	parts := []string{m.renderHeader(), m.viewport.View()}
	if m.quiz == nil {
		parts = append(parts, m.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := headerStyle.Render(m.topic.Name + " tutor")
	var hint string
	if m.quiz != nil {
		hint = metaStyle.Render("1-4: answer | enter: next | esc: quit quiz")
	} else {
		hint = metaStyle.Render("enter: send | ctrl+q: quiz | ctrl+s: summarize | esc: back")
	}
	return title + "\n" + hint
}

func (m *Model) rebuildContent() {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	if m.quiz != nil {
		m.viewport.SetContent(m.renderQuiz(width))
		return
	}

	var sb strings.Builder
	if len(m.history) == 0 && m.busy == "" {
		sb.WriteString(pendingStyle.Render("  Ask anything about " + m.topic.Name + " to get started."))
	}
	now := time.Now()
	for i, msg := range m.history {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch msg.Role {
		case api.RoleUser:
			sb.WriteString(youStyle.Render("You"))
		case summaryRole:
			sb.WriteString(summaryStyle.Render("Summary"))
		default:
			sb.WriteString(tutorStyle.Render("Tutor"))
		}
		if msg.Timestamp != "" {
			sb.WriteString(" " + metaStyle.Render(render.TimeAgo(msg.Timestamp, now)))
		}
		sb.WriteString("\n")
		sb.WriteString(render.Wrap(msg.Content, width))
		sb.WriteString("\n")
	}
	if m.busy != "" {
		sb.WriteString("\n" + pendingStyle.Render(m.busy))
	}
	m.viewport.SetContent(sb.String())
}

func (m Model) renderQuiz(width int) string {
	q := m.quiz
	if q.Done() {
		return "\n" + correctStyle.Render(m.quizDone) + "\n\n" + pendingStyle.Render("enter: back to chat")
	}

	cur := q.Question()
	var sb strings.Builder
	sb.WriteString(metaStyle.Render(fmt.Sprintf("Question %d of %d | score %d", q.Position(), q.Len(), q.Score())))
	sb.WriteString("\n\n")
	sb.WriteString(render.Wrap(cur.Question, width))
	sb.WriteString("\n")
	for i, opt := range cur.Options {
		line := fmt.Sprintf("  %d. %s", i+1, opt)
		switch {
		case q.Answered() && opt == cur.CorrectAnswer:
			line = correctStyle.Render(line)
		case q.Answered() && i == q.Picked():
			line = wrongStyle.Render(line)
		default:
			line = optionStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	if q.Answered() {
		sb.WriteString("\n" + separatorStyle.Render(strings.Repeat("─", width)) + "\n")
		if q.Correct() {
			sb.WriteString(correctStyle.Render("Correct!"))
		} else {
			sb.WriteString(wrongStyle.Render("Not quite. The answer is " + cur.CorrectAnswer))
		}
		sb.WriteString("\n")
		if cur.Explanation != "" {
			sb.WriteString(render.Wrap(cur.Explanation, width))
		}
		sb.WriteString("\n" + pendingStyle.Render("enter: next question"))
	}
	return sb.String()
}

func status(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return messages.StatusMsg{Text: text, IsError: isError}
	}
}
