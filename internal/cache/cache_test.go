package cache

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/tutor/internal/api"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTopics(t *testing.T) {
	db := openTestDB(t)

	topics, fresh, err := db.GetTopics(time.Hour)
	require.NoError(t, err)
	assert.Nil(t, topics)
	assert.False(t, fresh)

	require.NoError(t, db.PutTopics([]api.Topic{
		{ID: "python", Name: "Python Programming", Icon: "code"},
		{ID: "math", Name: "Mathematics"},
	}))

	topics, fresh, err = db.GetTopics(time.Hour)
	require.NoError(t, err)
	assert.True(t, fresh)
	require.Len(t, topics, 2)
	assert.Equal(t, "python", topics[0].ID, "backend order is kept")
	assert.Equal(t, "", topics[1].Icon)

	_, fresh, err = db.GetTopics(0)
	require.NoError(t, err)
	assert.False(t, fresh)

	require.NoError(t, db.PutTopics([]api.Topic{{ID: "art", Name: "Art & Design"}}))
	topics, _, err = db.GetTopics(time.Hour)
	require.NoError(t, err)
	require.Len(t, topics, 1, "put replaces the catalogue")
}

func TestProgress(t *testing.T) {
	db := openTestDB(t)

	p, _, err := db.GetProgress("u1", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, db.PutProgress("u1", &api.Progress{
		UserID:         "u1",
		XPPoints:       140,
		TopicsLearned:  []string{"math", "biology"},
		LearningStreak: 4,
	}))

	p, fresh, err := db.GetProgress("u1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, 140, p.XPPoints)
	assert.Equal(t, []string{"math", "biology"}, p.TopicsLearned)
	assert.Equal(t, "", p.LastActivity)
}

func TestCookies(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveCookies([]*http.Cookie{
		{Name: "session_token", Value: "tok"},
		{Name: "old", Value: "x", Expires: time.Now().Add(-time.Hour)},
		{Name: "later", Value: "y", Path: "/api", Expires: time.Now().Add(time.Hour), HttpOnly: true},
	}))

	cookies, err := db.LoadCookies()
	require.NoError(t, err)
	require.Len(t, cookies, 2, "expired cookies are dropped")

	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	assert.Equal(t, "tok", byName["session_token"].Value)
	assert.Equal(t, "/", byName["session_token"].Path)
	assert.True(t, byName["later"].HttpOnly)

	require.NoError(t, db.ClearCookies())
	cookies, err = db.LoadCookies()
	require.NoError(t, err)
	assert.Empty(t, cookies)
}
