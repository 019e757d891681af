package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	Home      key.Binding
	Tutor     key.Binding
	Dashboard key.Binding
	SignIn    key.Binding
	Logout    key.Binding
}

var Keys = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Home:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
	Tutor:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "tutor")),
	Dashboard: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "dashboard")),
	SignIn:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "sign in")),
	Logout:    key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "sign out")),
}
