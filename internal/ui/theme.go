package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#7C5CFF")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(accent)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(1, 2)
)
