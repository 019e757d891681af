package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/tutor/internal/api"
	"github.com/fragmede/tutor/internal/cache"
	"github.com/fragmede/tutor/internal/config"
	"github.com/fragmede/tutor/internal/ui/messages"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func setup(t *testing.T, mux *http.ServeMux) (*api.Client, *cache.DB) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	db, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return api.NewClient(srv.URL+"/api", time.Second), db
}

func overviewMux(progress http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/progress", progress)
	mux.HandleFunc("GET /api/quiz/results", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.QuizResult{{ID: "q1", Topic: "Mathematics", Score: 4, Total: 5}})
	})
	mux.HandleFunc("GET /api/chat/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []api.Chat{{ID: "c1", Topic: "Mathematics"}, {ID: "c2", Topic: "Biology"}})
	})
	return mux
}

var ann = &api.User{ID: "u1", Name: "Ann", LearningInterests: []string{"math"}}

func TestOverviewCachesProgress(t *testing.T) {
	client, db := setup(t, overviewMux(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Progress{UserID: "u1", XPPoints: 140, LearningStreak: 2})
	}))

	m := New(config.Default(), client, db, ann)
	m, _ = m.Update(m.Init()())

	require.NotNil(t, m.overview)
	assert.False(t, m.stale)
	assert.Equal(t, 140, m.overview.Progress.XPPoints)
	assert.Len(t, m.overview.Results, 1)

	cached, fresh, err := db.GetProgress("u1", time.Hour)
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, 140, cached.XPPoints)
}

func TestOverviewFallsBackToCachedProgress(t *testing.T) {
	client, db := setup(t, overviewMux(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	require.NoError(t, db.PutProgress("u1", &api.Progress{UserID: "u1", XPPoints: 60}))

	m := New(config.Default(), client, db, ann)
	m, _ = m.Update(m.Init()())

	assert.True(t, m.stale)
	assert.Equal(t, 60, m.overview.Progress.XPPoints)
	assert.Len(t, m.overview.Chats, 2)
}

func TestEnterResumesSelectedChat(t *testing.T) {
	client, db := setup(t, overviewMux(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Progress{UserID: "u1"})
	}))

	m := New(config.Default(), client, db, ann)
	m, _ = m.Update(m.Init()())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	nav, ok := cmd().(messages.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, "/tutor", nav.To.Path)
	assert.Equal(t, "c2", nav.To.Param("chat"))
	assert.Equal(t, "Biology", nav.To.Param("topic"))
}

func TestEditInterests(t *testing.T) {
	var got []string
	mux := overviewMux(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, api.Progress{UserID: "u1"})
	})
	mux.HandleFunc("PUT /api/auth/interests", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Interests []string `json:"interests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got = body.Interests
		writeJSON(w, map[string]string{"message": "Interests updated"})
	})
	client, db := setup(t, mux)

	m := New(config.Default(), client, db, ann)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	require.True(t, m.Editing())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(", physics ,")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.Editing())

	m, _ = m.Update(cmd())
	assert.Equal(t, []string{"math", "physics"}, got)
	assert.Equal(t, []string{"math", "physics"}, m.user.LearningInterests)
}

func TestSplitInterests(t *testing.T) {
	assert.Equal(t, []string{}, splitInterests(" , "))
	assert.Equal(t, []string{"a", "b c"}, splitInterests("a, b c,"))
}
