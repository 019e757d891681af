package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendURL     string
	AuthURL        string
	AppOrigin      string
	RequestTimeout time.Duration

	CacheDir string
	DBPath   string
	LogPath  string

	TopicsTTL   time.Duration
	ProgressTTL time.Duration

	QuizQuestions int
}

func Default() Config {
	return withDir(Config{
		BackendURL:     "http://localhost:8001",
		AuthURL:        "https://auth.emergentagent.com/",
		AppOrigin:      "http://localhost:3000",
		RequestTimeout: 10 * time.Second,
		TopicsTTL:      time.Hour,
		ProgressTTL:    5 * time.Minute,
		QuizQuestions:  5,
	}, filepath.Join(userConfigDir(), "tutor"))
}

// Load reads an optional .env file, then overlays environment variables
// on top of Default.
func Load() Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := Default()
	cfg.BackendURL = strings.TrimRight(getEnv("BACKEND_URL", cfg.BackendURL), "/")
	cfg.AuthURL = getEnv("AUTH_URL", cfg.AuthURL)
	cfg.AppOrigin = strings.TrimRight(getEnv("APP_ORIGIN", cfg.AppOrigin), "/")
	cfg.RequestTimeout = getDurationEnv("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.TopicsTTL = getDurationEnv("TOPICS_TTL", cfg.TopicsTTL)
	cfg.ProgressTTL = getDurationEnv("PROGRESS_TTL", cfg.ProgressTTL)
	cfg.QuizQuestions = getIntEnv("QUIZ_QUESTIONS", cfg.QuizQuestions)
	if dir := os.Getenv("TUTOR_CONFIG_DIR"); dir != "" {
		cfg = withDir(cfg, dir)
	}
	return cfg
}

// APIBase is the prefix every backend call is made against.
func (c Config) APIBase() string {
	return strings.TrimRight(c.BackendURL, "/") + "/api"
}

// LoginURL is the external sign-in page. After login it redirects the
// browser to the dashboard with a session handoff token in the fragment.
func (c Config) LoginURL() string {
	u, err := url.Parse(c.AuthURL)
	if err != nil {
		return c.AuthURL
	}
	q := u.Query()
	q.Set("redirect", strings.TrimRight(c.AppOrigin, "/")+"/dashboard")
	u.RawQuery = q.Encode()
	return u.String()
}

func withDir(c Config, dir string) Config {
	c.CacheDir = dir
	c.DBPath = filepath.Join(dir, "cache.db")
	c.LogPath = filepath.Join(dir, "debug.log")
	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
