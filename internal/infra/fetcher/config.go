// Package fetcher downloads article pages for URL-based analysis and
// extracts their readable text.
package fetcher

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"newstrust/internal/pkg/config"
)

// ContentFetchConfig bounds what a single article fetch may do. The limits
// exist to keep attacker-supplied URLs from reaching internal hosts
// (DenyPrivateIPs), exhausting memory (MaxBodySize) or hanging a request
// slot (Timeout, MaxRedirects).
type ContentFetchConfig struct {
	Timeout        time.Duration
	MaxBodySize    int64
	MaxRedirects   int
	DenyPrivateIPs bool
}

func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks the configured bounds.
func (c *ContentFetchConfig) Validate() error {
	if err := config.ValidateDuration(c.Timeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if err := config.ValidateIntRange(int(c.MaxBodySize), 1024, 100*1024*1024); err != nil {
		return fmt.Errorf("max body size: %w", err)
	}
	if err := config.ValidateIntRange(c.MaxRedirects, 0, 10); err != nil {
		return fmt.Errorf("max redirects: %w", err)
	}
	return nil
}

// LoadConfigFromEnv reads the CONTENT_FETCH_* environment variables.
// Unparseable or out-of-range values fall back to the defaults with a
// warning; URL fetching must never be down just because an override is bad.
func LoadConfigFromEnv() ContentFetchConfig {
	def := DefaultConfig()

	timeout := config.LoadDuration("CONTENT_FETCH_TIMEOUT", def.Timeout, func(d time.Duration) error {
		return config.ValidateDuration(d, time.Second, 5*time.Minute)
	})
	bodySize := config.LoadInt("CONTENT_FETCH_MAX_BODY_SIZE", int(def.MaxBodySize), func(v int) error {
		return config.ValidateIntRange(v, 1024, 100*1024*1024)
	})
	redirects := config.LoadInt("CONTENT_FETCH_MAX_REDIRECTS", def.MaxRedirects, func(v int) error {
		return config.ValidateIntRange(v, 0, 10)
	})

	for _, r := range []struct{ warnings []string }{
		{timeout.Warnings}, {bodySize.Warnings}, {redirects.Warnings},
	} {
		for _, w := range r.warnings {
			slog.Warn("Configuration fallback applied", slog.String("warning", w))
		}
	}

	denyPrivate := def.DenyPrivateIPs
	if raw := os.Getenv("CONTENT_FETCH_DENY_PRIVATE_IPS"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			slog.Warn("Configuration fallback applied",
				slog.String("warning", fmt.Sprintf("CONTENT_FETCH_DENY_PRIVATE_IPS=%q could not be parsed, keeping %v", raw, denyPrivate)))
		} else {
			denyPrivate = parsed
		}
	}

	return ContentFetchConfig{
		Timeout:        timeout.Value,
		MaxBodySize:    int64(bodySize.Value),
		MaxRedirects:   redirects.Value,
		DenyPrivateIPs: denyPrivate,
	}
}
