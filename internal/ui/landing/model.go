package landing

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/tutor/internal/api"
	"github.com/fragmede/tutor/internal/cache"
	"github.com/fragmede/tutor/internal/config"
	"github.com/fragmede/tutor/internal/route"
	"github.com/fragmede/tutor/internal/ui/messages"
)

const title = "AI Tutor"

type topicsLoadedMsg struct {
	Topics []api.Topic
	Err    error
}

// Model is the public landing view: the topic catalogue.
type Model struct {
	list    list.Model
	topics  []api.Topic
	client  *api.Client
	cache   *cache.DB
	cfg     config.Config
	user    string
	loading bool
}

// New creates the landing view.
func New(cfg config.Config, client *api.Client, db *cache.DB) Model {
	l := list.New(nil, topicDelegate{}, 0, 0)
	l.Title = title + " (loading topics...)"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return Model{
		list:    l,
		client:  client,
		cache:   db,
		cfg:     cfg,
		loading: true,
	}
}

// Init loads the topic catalogue.
func (m Model) Init() tea.Cmd {
	client := m.client
	db := m.cache
	ttl := m.cfg.TopicsTTL
	return func() tea.Msg {
		cached, fresh, _ := db.GetTopics(ttl)
		if fresh {
			return topicsLoadedMsg{Topics: cached}
		}
		topics, err := client.GetTopics(context.Background())
		if err != nil {
			if cached != nil {
				return topicsLoadedMsg{Topics: cached}
			}
			return topicsLoadedMsg{Err: err}
		}
		db.PutTopics(topics)
		return topicsLoadedMsg{Topics: topics}
	}
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.list.SetSize(w, h)
}

// SetUser sets the greeting name; empty for visitors.
func (m *Model) SetUser(name string) {
	m.user = name
	m.list.Title = m.heading()
}

// Topics returns the loaded catalogue.
func (m Model) Topics() []api.Topic {
	return m.topics
}

// Filtering reports whether the list filter is taking keystrokes.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = title + " (topics unavailable)"
			return m, func() tea.Msg {
				return messages.StatusMsg{Text: "Could not load topics: " + msg.Err.Error(), IsError: true}
			}
		}
		m.topics = msg.Topics
		items := make([]list.Item, len(msg.Topics))
		for i, t := range msg.Topics {
			items[i] = TopicItem{Topic: t, Index: i}
		}
		cmd := m.list.SetItems(items)
		m.list.Title = m.heading()
		return m, cmd

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(TopicItem); ok {
				to := route.At(string(route.Tutor)).WithQuery("topic", item.Topic.ID)
				return m, func() tea.Msg {
					return messages.NavigateMsg{To: to}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the topic list.
func (m Model) View() string {
	return m.list.View()
}

func (m Model) heading() string {
	if m.loading {
		return title + " (loading topics...)"
	}
	if m.user != "" {
		return title + " | Welcome back, " + m.user
	}
	return title + " | Press L to sign in"
}
