package config

import (
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("TUTOR_CONFIG_DIR", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8001", cfg.BackendURL)
	assert.Equal(t, "http://localhost:8001/api", cfg.APIBase())
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, filepath.Join(cfg.CacheDir, "cache.db"), cfg.DBPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BACKEND_URL", "https://tutor.example.com/")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("PROGRESS_TTL", "not-a-duration")
	t.Setenv("TUTOR_CONFIG_DIR", dir)
	t.Setenv("QUIZ_QUESTIONS", "8")

	cfg := Load()
	assert.Equal(t, "https://tutor.example.com", cfg.BackendURL)
	assert.Equal(t, "https://tutor.example.com/api", cfg.APIBase())
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.ProgressTTL, "invalid durations fall back to the default")
	assert.Equal(t, dir, cfg.CacheDir)
	assert.Equal(t, filepath.Join(dir, "debug.log"), cfg.LogPath)
	assert.Equal(t, 8, cfg.QuizQuestions)
}

func TestLoad_QuizQuestionsFallsBack(t *testing.T) {
	t.Setenv("TUTOR_CONFIG_DIR", t.TempDir())
	for _, v := range []string{"many", "0", "-3"} {
		t.Setenv("QUIZ_QUESTIONS", v)
		assert.Equal(t, 5, Load().QuizQuestions, "QUIZ_QUESTIONS=%q", v)
	}
}

func TestLoginURL(t *testing.T) {
	cfg := Default()
	cfg.AuthURL = "https://auth.example.com/"
	cfg.AppOrigin = "http://localhost:3000"

	u, err := url.Parse(cfg.LoginURL())
	require.NoError(t, err)
	assert.Equal(t, "auth.example.com", u.Host)
	assert.Equal(t, "http://localhost:3000/dashboard", u.Query().Get("redirect"))
}
