// Package search provides online search backends for corroboration checks.
// It queries a news RSS endpoint for the news mode and an HTML search
// engine for the web mode, behind a circuit breaker.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"newstrust/internal/resilience/circuitbreaker"
	"newstrust/internal/usecase/verify"

	"github.com/sony/gobreaker"
)

// Client implements the verify.SearchProvider interface against live
// search backends. A failed search is terminal for the request: the
// caller absorbs it into an ERROR status, and retrying against a
// rate-limited search provider would worsen the failure rather than fix
// it. The circuit breaker is the only protection layer.
type Client struct {
	cfg            Config
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewClient creates a new search client with the given configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:            cfg,
		client:         &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: circuitbreaker.New(circuitbreaker.SearchProviderConfig()),
	}
}

// Search runs a single query attempt against the backend selected by mode
// and returns up to limit raw results. It never retries.
func (c *Client) Search(ctx context.Context, mode verify.SearchMode, query string, limit int) ([]verify.RawResult, error) {
	if limit <= 0 || limit > c.cfg.MaxResults {
		limit = c.cfg.MaxResults
	}

	cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSearch(ctx, mode, query, limit)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("search circuit breaker open, request rejected",
				slog.String("service", "search"),
				slog.String("mode", string(mode)),
				slog.String("state", c.circuitBreaker.State().String()))
		}
		return nil, err
	}

	return cbResult.([]verify.RawResult), nil
}

// doSearch performs a single search attempt without circuit breaker.
func (c *Client) doSearch(ctx context.Context, mode verify.SearchMode, query string, limit int) ([]verify.RawResult, error) {
	switch mode {
	case verify.ModeNews:
		return c.searchNews(ctx, query, limit)
	case verify.ModeWeb:
		return c.searchWeb(ctx, query, limit)
	default:
		return nil, fmt.Errorf("unknown search mode %q", mode)
	}
}
