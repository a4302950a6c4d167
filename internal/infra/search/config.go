package search

import (
	"fmt"
	"os"
	"time"
)

// Config holds the configuration for the search client.
//
// Security and performance settings:
//   - Timeout: Prevents resource starvation from slow search backends
//   - MaxResults: Caps the number of results parsed per query
type Config struct {
	// NewsBaseURL is the base URL of the news search RSS endpoint.
	// Default: https://news.google.com/rss/search
	NewsBaseURL string

	// WebBaseURL is the base URL of the general web search endpoint.
	// Default: https://html.duckduckgo.com/html/
	WebBaseURL string

	// Timeout is the maximum duration for a single search request.
	// Default: 10s
	Timeout time.Duration

	// MaxResults is the maximum number of results parsed per query.
	// Default: 10
	MaxResults int

	// UserAgent is sent with every search request.
	UserAgent string
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() Config {
	return Config{
		NewsBaseURL: "https://news.google.com/rss/search",
		WebBaseURL:  "https://html.duckduckgo.com/html/",
		Timeout:     10 * time.Second,
		MaxResults:  10,
		UserAgent:   "NewsTrustBot/1.0",
	}
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.NewsBaseURL == "" {
		return fmt.Errorf("news base URL must not be empty")
	}
	if c.WebBaseURL == "" {
		return fmt.Errorf("web base URL must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxResults < 1 || c.MaxResults > 50 {
		return fmt.Errorf("max results must be between 1 and 50, got %d", c.MaxResults)
	}
	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// If a variable is not set, the default value is used.
//
// Environment variables:
//   - SEARCH_NEWS_BASE_URL: news RSS endpoint
//   - SEARCH_WEB_BASE_URL: web search endpoint
//   - SEARCH_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - SEARCH_MAX_RESULTS: integer (default: 10)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if val := os.Getenv("SEARCH_NEWS_BASE_URL"); val != "" {
		cfg.NewsBaseURL = val
	}

	if val := os.Getenv("SEARCH_WEB_BASE_URL"); val != "" {
		cfg.WebBaseURL = val
	}

	if val := os.Getenv("SEARCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid SEARCH_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("SEARCH_MAX_RESULTS"); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err != nil {
			return cfg, fmt.Errorf("invalid SEARCH_MAX_RESULTS: %v", err)
		}
		cfg.MaxResults = parsed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
