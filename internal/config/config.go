// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinPollInterval is the shortest accepted poll interval. Each cycle costs one
// GraphQL query, so faster polling would eat into the hourly quota.
const MinPollInterval = time.Minute

// DefaultAPIURL is the base URL of the public GitHub API. The GraphQL
// endpoint is resolved relative to it.
const DefaultAPIURL = "https://api.github.com/"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken  string
	GitHubAPIURL string
	PollInterval time.Duration
	ListenAddr   string
	DBPath       string
	LogLevel     slog.Level
	OpenBrowser  bool
}

// HasGitHubToken reports whether a token is configured. Without one the
// composition root starts with no pull request source and every cycle fails
// with a "no token" error.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// PRBELL_GITHUB_TOKEN is optional at startup. Optional variables with defaults:
// PRBELL_GITHUB_API_URL (https://api.github.com/, or https://HOST/api/ on GHES),
// PRBELL_POLL_INTERVAL (3m),
// PRBELL_LISTEN_ADDR (127.0.0.1:8080), PRBELL_DB_PATH (prbell.db),
// PRBELL_LOG_LEVEL (info), PRBELL_OPEN_BROWSER (true).
func Load() (*Config, error) {
	cfg := &Config{
		GitHubToken:  strings.TrimSpace(os.Getenv("PRBELL_GITHUB_TOKEN")),
		GitHubAPIURL: DefaultAPIURL,
		PollInterval: 3 * time.Minute,
		ListenAddr:   "127.0.0.1:8080",
		DBPath:       "prbell.db",
		LogLevel:     slog.LevelInfo,
		OpenBrowser:  true,
	}

	if v, ok := os.LookupEnv("PRBELL_GITHUB_API_URL"); ok && v != "" {
		u, err := url.Parse(v)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, fmt.Errorf("PRBELL_GITHUB_API_URL must be an absolute URL, got %q", v)
		}
		if strings.HasSuffix(strings.TrimSuffix(u.Path, "/"), "/graphql") {
			return nil, fmt.Errorf("PRBELL_GITHUB_API_URL must be the API root (e.g. https://HOST/api/), not the GraphQL endpoint, got %q", v)
		}
		cfg.GitHubAPIURL = v
	}

	if v, ok := os.LookupEnv("PRBELL_POLL_INTERVAL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PRBELL_POLL_INTERVAL has invalid duration %q: %w", v, err)
		}
		if parsed < MinPollInterval {
			return nil, fmt.Errorf("PRBELL_POLL_INTERVAL must be at least %s, got %s", MinPollInterval, parsed)
		}
		cfg.PollInterval = parsed
	}

	if v, ok := os.LookupEnv("PRBELL_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}

	if v, ok := os.LookupEnv("PRBELL_DB_PATH"); ok {
		cfg.DBPath = v
	}

	if v, ok := os.LookupEnv("PRBELL_LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("PRBELL_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	if v, ok := os.LookupEnv("PRBELL_OPEN_BROWSER"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PRBELL_OPEN_BROWSER has invalid boolean %q: %w", v, err)
		}
		cfg.OpenBrowser = parsed
	}

	return cfg, nil
}
