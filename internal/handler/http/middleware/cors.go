// Package middleware provides reusable HTTP middleware for the API server.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins, normalized to
	// lowercase with trailing slashes removed.
	// Example: ["http://localhost:3000", "https://example.com"]
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string

	// MaxAge specifies how long preflight results can be cached (in seconds).
	// Default: 86400 (24 hours)
	MaxAge int

	// Logger receives CORS policy violations and preflight traces. May be nil.
	Logger *slog.Logger
}

// LoadCORSConfig loads CORS configuration from environment variables.
// CORS_ALLOWED_ORIGINS is required (fail-closed); each origin must be a
// bare http(s) URL with no path, query, fragment, or trailing slash.
// CORS_ALLOWED_METHODS, CORS_ALLOWED_HEADERS, and CORS_MAX_AGE override
// the defaults when set.
func LoadCORSConfig() (*CORSConfig, error) {
	originsStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if originsStr == "" {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS environment variable is required")
	}

	origins := make([]string, 0)
	for _, originStr := range strings.Split(originsStr, ",") {
		originStr = strings.TrimSpace(originStr)
		if originStr == "" {
			continue
		}

		u, err := url.Parse(originStr)
		if err != nil {
			return nil, fmt.Errorf("invalid origin URL '%s': %w", originStr, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("origin must use http or https scheme: %s", originStr)
		}
		if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
			return nil, fmt.Errorf("origin must not include path, query or fragment: %s", originStr)
		}
		if strings.HasSuffix(originStr, "/") {
			return nil, fmt.Errorf("origin must not have trailing slash: %s", originStr)
		}

		origins = append(origins, strings.ToLower(originStr))
	}
	if len(origins) == 0 {
		return nil, fmt.Errorf("at least one valid origin must be configured in CORS_ALLOWED_ORIGINS")
	}

	methods := []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_METHODS")); v != "" {
		methods = splitAndTrim(v)
	}

	headers := []string{"Content-Type", "X-Request-ID"}
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_HEADERS")); v != "" {
		headers = splitAndTrim(v)
	}

	maxAge := 86400
	if v := strings.TrimSpace(os.Getenv("CORS_MAX_AGE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid CORS_MAX_AGE: %s", v)
		}
		maxAge = n
	}

	return &CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         maxAge,
	}, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isAllowed reports whether the given Origin header value is in the
// whitelist. Comparison is case-insensitive and ignores a trailing slash.
func (c *CORSConfig) isAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	origin = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// CORS returns an HTTP middleware that handles cross-origin requests.
//
// Behavior:
//   - If the Origin header is empty, skip CORS processing (same-origin request)
//   - If the origin is not allowed, log a warning and continue without CORS
//     headers; the browser blocks the response
//   - If the origin is allowed and the request is a preflight OPTIONS, set the
//     preflight headers and return 204 without calling the next handler
//   - Otherwise set Access-Control-Allow-Origin and pass the request through
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.isAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("remote_addr", r.RemoteAddr),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo back the request origin (required for credentials)
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
