package landing

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const cursor = "▌"

var (
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	aboutStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	badgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Width(4).Align(lipgloss.Right)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C5CFF"))

	activeNameStyle  = nameStyle.Foreground(lipgloss.Color("#7C5CFF"))
	activeAboutStyle = aboutStyle.Foreground(lipgloss.Color("#CCCCCC"))
)

// topicDelegate draws a topic as a numbered row with its glyph and name,
// and what the topic covers underneath.
type topicDelegate struct{}

func (topicDelegate) Height() int                         { return 2 }
func (topicDelegate) Spacing() int                        { return 1 }
func (topicDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (topicDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(TopicItem)
	if !ok {
		return
	}

	bar, name, about := " ", nameStyle, aboutStyle
	if index == m.Index() {
		bar, name, about = cursorStyle.Render(cursor), activeNameStyle, activeAboutStyle
	}
	badge := badgeStyle.Render(fmt.Sprintf("%d.", item.Index+1))

	width := m.Width() - 8
	if width < 10 {
		width = 10
	}
	fmt.Fprintf(w, "%s%s %s %s\n%s      %s", bar, badge, item.Glyph(), name.Render(item.Title()),
		bar, about.MaxWidth(width).Render(item.Description()))
}
