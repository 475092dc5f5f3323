package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SITE_URL", "DATABASE_URL", "SQLITE_PATH", "GITHUB_API_URL",
		"CMS_ALLOWED_USERS", "COMMENT_AUTO_APPROVE", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW_SECONDS",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.GitHubAPIURL != defaultGitHubAPIURL {
		t.Errorf("Unexpected provider URL: %s", cfg.GitHubAPIURL)
	}
	if !cfg.AutoApprove {
		t.Error("Auto-approve must default to true")
	}
	if cfg.RateLimitMax != 3 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("Unexpected rate limit defaults: %d per %v", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	if len(cfg.AllowedUsers) != 0 {
		t.Errorf("Expected empty allow-list, got %v", cfg.AllowedUsers)
	}
}

func TestLoadOverrides(t *testing.T) {
	os.Setenv("COMMENT_AUTO_APPROVE", "false")
	os.Setenv("RATE_LIMIT_MAX", "5")
	os.Setenv("RATE_LIMIT_WINDOW_SECONDS", "120")
	defer func() {
		os.Unsetenv("COMMENT_AUTO_APPROVE")
		os.Unsetenv("RATE_LIMIT_MAX")
		os.Unsetenv("RATE_LIMIT_WINDOW_SECONDS")
	}()

	cfg := Load()
	if cfg.AutoApprove {
		t.Error("Expected auto-approve off")
	}
	if cfg.RateLimitMax != 5 || cfg.RateLimitWindow != 2*time.Minute {
		t.Errorf("Unexpected rate limit overrides: %d per %v", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
}

func TestParseAllowedUsers(t *testing.T) {
	users := parseAllowedUsers(" BlogOwner , editor,, ")
	if len(users) != 2 || users[0] != "blogowner" || users[1] != "editor" {
		t.Errorf("Unexpected allow-list: %v", users)
	}
	if parseAllowedUsers("") != nil {
		t.Error("Empty value must yield an empty allow-list")
	}
}
