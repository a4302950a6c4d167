package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"newstrust/internal/resilience/circuitbreaker"
	"newstrust/internal/resilience/retry"
	"newstrust/internal/utils/text"
)

// summarizeTimeout bounds a single provider call including retries.
const summarizeTimeout = 60 * time.Second

// maxInputChars caps the article body passed into the prompt. Both
// providers accept far more, but anything past this adds tokens without
// changing the summary of a news article.
const maxInputChars = 10000

// clipInput truncates oversized article bodies before prompting.
func clipInput(body string) string {
	if len(body) <= maxInputChars {
		return body
	}
	clipped := body[:maxInputChars] + "...\n(content truncated for length)"
	slog.Warn("article body truncated before summarization",
		slog.Int("original_length", len(body)),
		slog.Int("clipped_length", len(clipped)))
	return clipped
}

// summaryPrompt asks for a factual-claims-only summary within limit runes.
func summaryPrompt(limit int, body string) string {
	return fmt.Sprintf("Summarize the following news article in english, in %d characters or fewer. Keep only factual claims:\n%s",
		limit, body)
}

// callWithResilience runs a provider call through the retry policy and the
// provider's circuit breaker. An open breaker is reported as an unavailable
// provider rather than surfacing gobreaker internals to callers.
func callWithResilience(ctx context.Context, provider string, cb *circuitbreaker.CircuitBreaker, cfg retry.Config, call func() (string, error)) (string, error) {
	var result string

	retryErr := retry.WithBackoff(ctx, cfg, func() error {
		out, err := cb.Execute(func() (any, error) {
			return call()
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("summarizer circuit breaker open, request rejected",
					slog.String("provider", provider),
					slog.String("state", cb.State().String()))
				return fmt.Errorf("%s unavailable: circuit breaker open", provider)
			}
			return err
		}
		result = out.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("%s summarize failed after retries: %w", provider, retryErr)
	}
	return result, nil
}

// observeSummary logs the outcome of one summarization and feeds the
// summary length metrics. Exceeding the limit is a soft failure: the
// summary is still used, the excess is only recorded.
func observeSummary(ctx context.Context, rec SummaryMetricsRecorder, summary string, limit int, duration time.Duration) {
	length := text.CountRunes(summary)
	within := length <= limit

	slog.InfoContext(ctx, "Summarization completed",
		slog.Int("summary_length", length),
		slog.Int("character_limit", limit),
		slog.Bool("within_limit", within),
		slog.Duration("duration", duration))
	if !within {
		slog.WarnContext(ctx, "Summary exceeds character limit",
			slog.Int("summary_length", length),
			slog.Int("limit", limit),
			slog.Int("excess", length-limit))
	}

	rec.RecordLength(length)
	rec.RecordDuration(duration)
	rec.RecordCompliance(within)
	if !within {
		rec.RecordLimitExceeded()
	}
}
