package signin

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/tutor/internal/auth"
	"github.com/fragmede/tutor/internal/route"
	"github.com/fragmede/tutor/internal/ui/messages"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C5CFF"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")).Underline(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C5CFF")).Bold(true).
			Padding(1, 0)
)

// Model is the sign-in overlay. The login itself happens in the browser;
// the user pastes back the address the login page redirected to.
type Model struct {
	input    textinput.Model
	loginURL string
	err      string
	width    int
	height   int
}

// New creates the overlay for the given login page.
func New(loginURL string) Model {
	input := textinput.New()
	input.Placeholder = "http://localhost:3000/dashboard#session_id=..."
	input.Focus()
	input.Width = 60

	return Model{
		input:    input,
		loginURL: loginURL,
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		raw := strings.TrimSpace(m.input.Value())
		if raw == "" {
			m.err = "Paste the address your browser landed on"
			return m, nil
		}
		if _, ok := auth.SessionToken(route.Parse(raw).Fragment); !ok {
			m.err = "That address has no session_id; finish signing in first"
			return m, nil
		}
		m.err = ""
		return m, func() tea.Msg {
			return messages.ReloadMsg{URL: raw}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the overlay.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Sign in to AI Tutor"))
	sb.WriteString("\n\n")
	sb.WriteString("Your browser is opening the login page. If it did not, visit:\n")
	sb.WriteString(linkStyle.Render(m.loginURL))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Redirect address:"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}

	sb.WriteString(focusedStyle.Render("Enter") + " to continue, " + focusedStyle.Render("Esc") + " to cancel")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
