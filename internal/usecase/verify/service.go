package verify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"newstrust/internal/domain/entity"
	"newstrust/internal/observability/metrics"
	"newstrust/internal/registry"
)

const (
	// DefaultResultLimit is the number of results requested from the provider
	// when the caller does not configure one.
	DefaultResultLimit = 10

	// minQueryTokens is the minimum number of whitespace-separated tokens a
	// query must carry before a search call is worth making.
	minQueryTokens = 3

	// MsgQueryTooShort is returned for queries below the token minimum.
	MsgQueryTooShort = "Query too short for verification"

	// MsgSearchFailed is returned when the provider fails for any reason.
	MsgSearchFailed = "Live verification failed (Connection/Limit)"

	// MsgNoResults is returned when the search produced zero or one result.
	MsgNoResults = "No matching search results found online."
)

// Service is the corroboration client. It issues one search per request,
// normalizes each hit into a SourceEntry flagged against the registry, and
// derives a CorroborationResult. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	Provider SearchProvider
	Registry *registry.Registry
	// Limit is the number of results to request; DefaultResultLimit when zero.
	Limit int
}

// Verify runs one corroboration query and returns the aggregated signal.
// It never returns an error: provider failures are absorbed into a result
// with StatusError so that a corroboration outage degrades the request
// instead of crashing it.
func (s *Service) Verify(ctx context.Context, query string) entity.CorroborationResult {
	if len(strings.Fields(query)) < minQueryTokens {
		return entity.CorroborationResult{
			Status:  entity.StatusUnverified,
			Sources: []entity.SourceEntry{},
			Message: MsgQueryTooShort,
		}
	}

	limit := s.Limit
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	slog.InfoContext(ctx, "verifying online",
		slog.String("query", query),
		slog.Int("limit", limit))

	results, err := s.Provider.Search(ctx, ModeNews, query, limit)
	if err != nil {
		return s.searchFailed(ctx, err)
	}

	// News indices miss older and niche stories; retry the same query on the
	// general web index before concluding nothing was found.
	if len(results) == 0 {
		slog.InfoContext(ctx, "news search empty, trying general web search")
		results, err = s.Provider.Search(ctx, ModeWeb, query, limit)
		if err != nil {
			return s.searchFailed(ctx, err)
		}
	}

	sources := make([]entity.SourceEntry, 0, len(results))
	reliableMatches := make([]string, 0, len(results))

	for _, raw := range results {
		url := raw.URL
		if url == "" {
			url = raw.Href
		}
		if url == "" {
			continue
		}

		domain := entity.DeriveDomain(url)
		isReliable := s.Registry.IsReliableDomain(domain)
		// Domain parsing can fail for redirect/AMP URLs; the provider's own
		// source label is the second chance.
		if !isReliable && raw.SourceName != "" {
			isReliable = s.Registry.IsReliableSourceName(raw.SourceName)
		}

		sources = append(sources, entity.SourceEntry{
			URL:        url,
			Domain:     domain,
			Title:      raw.Title,
			SourceName: raw.SourceName,
			IsReliable: isReliable,
		})
		if isReliable {
			reliableMatches = append(reliableMatches, domain)
		}
	}

	result := deriveStatus(sources, reliableMatches)
	metrics.RecordVerification(string(result.Status), result.ReliableCount)
	slog.InfoContext(ctx, "verification completed",
		slog.String("status", string(result.Status)),
		slog.Int("sources", len(result.Sources)),
		slog.Int("reliable_count", result.ReliableCount))
	return result
}

// searchFailed converts a provider failure into the typed ERROR result.
func (s *Service) searchFailed(ctx context.Context, err error) entity.CorroborationResult {
	slog.ErrorContext(ctx, "search provider failed", slog.Any("error", err))
	metrics.RecordVerification(string(entity.StatusError), 0)
	return entity.CorroborationResult{
		Status:  entity.StatusError,
		Sources: []entity.SourceEntry{},
		Message: MsgSearchFailed,
	}
}

// deriveStatus applies the status rules in order, first match wins.
func deriveStatus(sources []entity.SourceEntry, reliableMatches []string) entity.CorroborationResult {
	reliableCount := len(reliableMatches)

	switch {
	case reliableCount >= 1:
		listed := reliableMatches
		if len(listed) > 3 {
			listed = listed[:3]
		}
		return entity.CorroborationResult{
			Status:        entity.StatusVerifiedReal,
			Sources:       sources,
			ReliableCount: reliableCount,
			Message:       "Verified by: " + strings.Join(listed, ", "),
		}

	case len(sources) >= 2:
		// Enough independent mentions make pure fabrication unlikely, but
		// absence from the curated registry withholds full trust.
		return entity.CorroborationResult{
			Status:  entity.StatusUnverified,
			Sources: sources,
			Message: fmt.Sprintf("Found mentions on %d sites (e.g., %s), but not verified by major outlets.",
				len(sources), sources[0].Domain),
		}

	default:
		return entity.CorroborationResult{
			Status:  entity.StatusUnverified,
			Sources: sources,
			Message: MsgNoResults,
		}
	}
}
