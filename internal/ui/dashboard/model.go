package dashboard

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
	"github.com/fragmede/tutor/internal/cache"
	"github.com/fragmede/tutor/internal/config"
	"github.com/fragmede/tutor/internal/render"
	"github.com/fragmede/tutor/internal/route"
	"github.com/fragmede/tutor/internal/ui/messages"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C5CFF")).Bold(true).Padding(1, 0, 0, 1)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Padding(1, 0, 0, 1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Bold(true)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	selStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#333333"))
)

const recentLimit = 5

type (
	overviewMsg struct {
		Overview    *api.Overview
		StaleCached bool
		Err         error
	}
	interestsSavedMsg struct {
		Interests []string
		Err       error
	}
)

// Model is the protected dashboard: progress, recent quizzes and chats.
type Model struct {
	viewport viewport.Model
	input    textinput.Model
	user     *api.User
	overview *api.Overview
	stale    bool
	loading  bool
	editing  bool
	selected int
	client   *api.Client
	cache    *cache.DB
	cfg      config.Config
	width    int
	height   int
}

// New creates the dashboard for user.
func New(cfg config.Config, client *api.Client, db *cache.DB, user *api.User) Model {
	input := textinput.New()
	input.Placeholder = "algebra, biology, poetry"
	input.Prompt = "Interests: "

	m := Model{
		viewport: viewport.New(0, 0),
		input:    input,
		user:     user,
		loading:  true,
		client:   client,
		cache:    db,
		cfg:      cfg,
	}
	if p, fresh, _ := db.GetProgress(user.ID, cfg.ProgressTTL); p != nil && fresh {
		m.overview = &api.Overview{Progress: p}
	}
	return m
}

// Init fetches the overview.
func (m Model) Init() tea.Cmd {
	client := m.client
	db := m.cache
	userID := m.user.ID
	return func() tea.Msg {
		ov, err := client.GetOverview(context.Background())
		if err != nil {
			return overviewMsg{Err: err}
		}
		if ov.ProgressErr == nil {
			db.PutProgress(userID, ov.Progress)
			return overviewMsg{Overview: ov}
		}
		if cached, _, _ := db.GetProgress(userID, 0); cached != nil {
			ov.Progress = cached
			return overviewMsg{Overview: ov, StaleCached: true}
		}
		return overviewMsg{Overview: ov}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h - 3
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = w - 16
	m.rebuildContent()
}

// SetUser replaces the user the dashboard greets.
func (m *Model) SetUser(user *api.User) {
	m.user = user
	m.rebuildContent()
}

// Editing reports whether the interests editor owns the keyboard.
func (m Model) Editing() bool { return m.editing }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		m.loading = false
		if msg.Err != nil {
			m.rebuildContent()
			return m, status("Could not load dashboard: "+msg.Err.Error(), true)
		}
		m.overview = msg.Overview
		m.stale = msg.StaleCached
		m.selected = 0
		m.rebuildContent()
		return m, nil

	case interestsSavedMsg:
		if msg.Err != nil {
			return m, status("Could not save interests: "+msg.Err.Error(), true)
		}
		u := *m.user
		u.LearningInterests = msg.Interests
		m.user = &u
		m.rebuildContent()
		return m, status("Interests updated", false)

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		switch msg.String() {
		case "i":
			m.editing = true
			m.input.SetValue(strings.Join(m.user.LearningInterests, ", "))
			m.input.CursorEnd()
			cmd := m.input.Focus()
			return m, cmd
		case "r", "ctrl+r":
			m.loading = true
			m.rebuildContent()
			return m, m.Init()
		case "j", "down":
			if m.selected < len(m.recentChats())-1 {
				m.selected++
				m.rebuildContent()
			}
			return m, nil
		case "k", "up":
			if m.selected > 0 {
				m.selected--
				m.rebuildContent()
			}
			return m, nil
		case "enter":
			chats := m.recentChats()
			if m.selected < len(chats) {
				c := chats[m.selected]
				to := route.At(string(route.Tutor)).WithQuery("topic", c.Topic).WithQuery("chat", c.ID)
				return m, func() tea.Msg { return messages.NavigateMsg{To: to} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.input.Blur()
		interests := splitInterests(m.input.Value())
		client := m.client
		return m, func() tea.Msg {
			err := client.UpdateInterests(context.Background(), interests)
			return interestsSavedMsg{Interests: interests, Err: err}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func splitInterests(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func (m Model) recentChats() []api.Chat {
	if m.overview == nil {
		return nil
	}
	chats := m.overview.Chats
	if len(chats) > recentLimit {
		chats = chats[:recentLimit]
	}
	return chats
}

// View renders the dashboard.
func (m Model) View() string {
	footer := dimStyle.Render(" i: edit interests | j/k + enter: resume chat | r: refresh")
	if m.editing {
		footer = " " + m.input.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m *Model) rebuildContent() {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Welcome back, " + m.user.DisplayName()))
	sb.WriteString("\n")

	interests := "none yet"
	if len(m.user.LearningInterests) > 0 {
		interests = strings.Join(m.user.LearningInterests, ", ")
	}
	sb.WriteString(" " + labelStyle.Render("Interests: ") + valueStyle.Render(interests) + "\n")

	if m.overview == nil {
		if m.loading {
			sb.WriteString("\n " + dimStyle.Render("Loading your progress..."))
		}
		m.viewport.SetContent(sb.String())
		return
	}
	ov := m.overview
	now := time.Now()

	sb.WriteString(sectionStyle.Render("Progress"))
	if m.stale {
		sb.WriteString(dimStyle.Render(" (cached)"))
	}
	sb.WriteString("\n")
	switch {
	case ov.Progress != nil:
		p := ov.Progress
		sb.WriteString(fmt.Sprintf(" %s%s   %s%s\n",
			labelStyle.Render("XP: "), valueStyle.Render(fmt.Sprint(p.XPPoints)),
			labelStyle.Render("Streak: "), valueStyle.Render(fmt.Sprintf("%d days", p.LearningStreak))))
		learned := "none yet"
		if len(p.TopicsLearned) > 0 {
			learned = strings.Join(p.TopicsLearned, ", ")
		}
		sb.WriteString(" " + labelStyle.Render("Topics: ") + valueStyle.Render(learned) + "\n")
	case ov.ProgressErr != nil:
		sb.WriteString(" " + errorStyle.Render("unavailable: "+ov.ProgressErr.Error()) + "\n")
	}

	sb.WriteString(sectionStyle.Render("Recent quizzes"))
	sb.WriteString("\n")
	switch {
	case ov.ResultsErr != nil:
		sb.WriteString(" " + errorStyle.Render("unavailable: "+ov.ResultsErr.Error()) + "\n")
	case len(ov.Results) == 0:
		sb.WriteString(" " + dimStyle.Render("No quizzes taken yet. Open a topic and press ctrl+q.") + "\n")
	default:
		results := ov.Results
		if len(results) > recentLimit {
			results = results[:recentLimit]
		}
		for _, r := range results {
			sb.WriteString(fmt.Sprintf(" %-24s %d/%d %5s  %s\n", r.Topic, r.Score, r.Total,
				render.Percent(r.Score, r.Total), dimStyle.Render(render.TimeAgo(r.CreatedAt, now))))
		}
	}

	sb.WriteString(sectionStyle.Render("Recent chats"))
	sb.WriteString("\n")
	switch chats := m.recentChats(); {
	case ov.ChatsErr != nil:
		sb.WriteString(" " + errorStyle.Render("unavailable: "+ov.ChatsErr.Error()) + "\n")
	case len(chats) == 0:
		sb.WriteString(" " + dimStyle.Render("No conversations yet.") + "\n")
	default:
		for i, c := range chats {
			line := fmt.Sprintf(" %-24s %3d messages  %s", c.Topic, len(c.Messages), render.TimeAgo(c.CreatedAt, now))
			if i == m.selected {
				line = selStyle.Render(line)
			}
			sb.WriteString(line + "\n")
		}
	}

	m.viewport.SetContent(sb.String())
}

func status(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return messages.StatusMsg{Text: text, IsError: isError}
	}
}
