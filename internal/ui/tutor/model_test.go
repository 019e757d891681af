package tutor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/tutor/internal/api"
	"github.com/fragmede/tutor/internal/config"
	"github.com/fragmede/tutor/internal/ui/messages"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestModel(t *testing.T, mux *http.ServeMux) Model {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL+"/api", time.Second)
	m := New(config.Default(), client, api.Topic{ID: "math", Name: "Mathematics"}, "")
	m.SetSize(80, 24)
	return m
}

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func TestChatKeepsConversationID(t *testing.T) {
	var seen []map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		seen = append(seen, body)
		writeJSON(w, map[string]string{"chat_id": "c1", "response": "Sure.", "timestamp": "2025-01-01T00:00:00Z"})
	})
	m := newTestModel(t, mux)

	m = typeText(m, "what is a prime?")
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Equal(t, "c1", m.ChatID())

	m = typeText(m, "and 7?")
	m, cmd = press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	require.Len(t, seen, 2)
	assert.Equal(t, "Mathematics", seen[0]["topic"])
	assert.NotContains(t, seen[0], "chat_id")
	assert.Equal(t, "c1", seen[1]["chat_id"])
	assert.Len(t, m.history, 4)
}

func TestEmptyMessageIsNotSent(t *testing.T) {
	m := newTestModel(t, http.NewServeMux())
	_, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
}

func TestChatErrorBecomesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{"detail": "AI service not configured"})
	})
	m := newTestModel(t, mux)

	m = typeText(m, "hello")
	m, cmd := press(m, tea.KeyEnter)
	m, cmd = m.Update(cmd())
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.StatusMsg)
	require.True(t, ok)
	assert.True(t, msg.IsError)
	assert.Contains(t, msg.Text, "AI service not configured")
	assert.Empty(t, m.busy)
}

func TestQuizRunsAndSavesResult(t *testing.T) {
	var saved map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/quiz/generate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Quiz{Topic: "Mathematics", Questions: sampleQuestions()})
	})
	mux.HandleFunc("POST /api/quiz/save", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
		writeJSON(w, map[string]interface{}{"message": "Quiz result saved", "xp_earned": 20})
	})
	m := newTestModel(t, mux)

	m, cmd := press(m, tea.KeyCtrlQ)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	require.True(t, m.InQuiz())

	m = typeText(m, "2")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "2")
	m, cmd = press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	m, cmd = m.Update(cmd())
	require.NotNil(t, cmd)
	status, ok := cmd().(messages.StatusMsg)
	require.True(t, ok)
	assert.Equal(t, "Quiz saved, +20 XP", status.Text)
	assert.Contains(t, m.quizDone, "1/2")

	assert.Equal(t, "Mathematics", saved["topic"])
	assert.EqualValues(t, 1, saved["score"])
	assert.EqualValues(t, 2, saved["total"])

	m, _ = press(m, tea.KeyEnter)
	assert.False(t, m.InQuiz())
}

func TestResumeLoadsConversation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/chat/c9", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Chat{ID: "c9", Topic: "Mathematics", Messages: []api.ChatMessage{
			{Role: api.RoleUser, Content: "hi"},
			{Role: api.RoleAssistant, Content: "hello"},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL+"/api", time.Second)

	m := New(config.Default(), client, api.Topic{ID: "math", Name: "Mathematics"}, "c9")
	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.Equal(t, "c9", m.ChatID())
	assert.Len(t, m.history, 2)
	assert.Contains(t, m.transcript(), "Tutor: hello")
}
