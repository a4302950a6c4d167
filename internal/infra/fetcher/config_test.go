package fetcher

import (
	"testing"
	"time"
)

func clearFetchEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONTENT_FETCH_TIMEOUT",
		"CONTENT_FETCH_MAX_BODY_SIZE",
		"CONTENT_FETCH_MAX_REDIRECTS",
		"CONTENT_FETCH_DENY_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigFromEnv_defaults(t *testing.T) {
	clearFetchEnv(t)

	cfg := LoadConfigFromEnv()

	if cfg != DefaultConfig() {
		t.Errorf("LoadConfigFromEnv() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfigFromEnv_overrides(t *testing.T) {
	clearFetchEnv(t)
	t.Setenv("CONTENT_FETCH_TIMEOUT", "20s")
	t.Setenv("CONTENT_FETCH_MAX_BODY_SIZE", "2048")
	t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "2")
	t.Setenv("CONTENT_FETCH_DENY_PRIVATE_IPS", "false")

	cfg := LoadConfigFromEnv()

	if cfg.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", cfg.Timeout)
	}
	if cfg.MaxBodySize != 2048 {
		t.Errorf("MaxBodySize = %d, want 2048", cfg.MaxBodySize)
	}
	if cfg.MaxRedirects != 2 {
		t.Errorf("MaxRedirects = %d, want 2", cfg.MaxRedirects)
	}
	if cfg.DenyPrivateIPs {
		t.Error("DenyPrivateIPs = true, want false")
	}
}

func TestLoadConfigFromEnv_invalidValuesFallBack(t *testing.T) {
	clearFetchEnv(t)
	t.Setenv("CONTENT_FETCH_TIMEOUT", "yesterday")
	t.Setenv("CONTENT_FETCH_MAX_BODY_SIZE", "10")
	t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "99")
	t.Setenv("CONTENT_FETCH_DENY_PRIVATE_IPS", "maybe")

	cfg := LoadConfigFromEnv()

	if cfg != DefaultConfig() {
		t.Errorf("LoadConfigFromEnv() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}
