package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server reads from the environment. It is
// built once in main and passed into constructors explicitly; nothing else
// in the codebase touches os.Getenv.
type Config struct {
	Port    string
	SiteURL string

	// Store backend. DatabaseURL (Postgres DSN) wins; SQLitePath is the
	// file-based fallback. With neither set the service runs without a
	// store and answers with explicit "not configured" payloads.
	DatabaseURL string
	SQLitePath  string

	// Admin identity.
	GitHubAPIURL       string
	GitHubClientID     string
	GitHubClientSecret string
	AllowedUsers       []string

	// Moderation policy for new comments.
	AutoApprove bool

	// Spam throttle.
	RateLimitMax    int
	RateLimitWindow time.Duration
}

const defaultGitHubAPIURL = "https://api.github.com"

func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		SiteURL:            getEnv("SITE_URL", "http://localhost:8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SQLitePath:         os.Getenv("SQLITE_PATH"),
		GitHubAPIURL:       getEnv("GITHUB_API_URL", defaultGitHubAPIURL),
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		AllowedUsers:       parseAllowedUsers(os.Getenv("CMS_ALLOWED_USERS")),
		AutoApprove:        getEnvBool("COMMENT_AUTO_APPROVE", true),
		RateLimitMax:       getEnvInt("RATE_LIMIT_MAX", 3),
		RateLimitWindow:    time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
	return cfg
}

// parseAllowedUsers splits a comma list of usernames, trimming and
// lower-casing each entry. An empty result means any verified identity is
// accepted.
func parseAllowedUsers(raw string) []string {
	if raw == "" {
		return nil
	}
	var users []string
	for _, u := range strings.Split(raw, ",") {
		u = strings.ToLower(strings.TrimSpace(u))
		if u != "" {
			users = append(users, u)
		}
	}
	return users
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
