package summarizer

import (
	"context"
	"log/slog"
	"time"

	"newstrust/internal/observability/metrics"
)

// Summarizer generates a condensed version of article text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Fallback wraps a primary summarizer and falls back to extractive lead
// sentences when the primary fails. A failed summarization never fails
// the caller.
type Fallback struct {
	primary Summarizer
	lead    *Lead
}

// NewFallback creates a Fallback around the given primary summarizer.
// A nil primary routes every request straight to the lead extractor.
func NewFallback(primary Summarizer) *Fallback {
	return &Fallback{
		primary: primary,
		lead:    NewLead(),
	}
}

// Summarize runs the primary summarizer and degrades to lead sentences on
// failure.
func (f *Fallback) Summarize(ctx context.Context, text string) (string, error) {
	start := time.Now()

	if f.primary != nil {
		summary, err := f.primary.Summarize(ctx, text)
		if err == nil {
			metrics.RecordSummarization("success", time.Since(start))
			return summary, nil
		}
		slog.Warn("primary summarizer failed, using lead sentences",
			slog.Any("error", err))
	}

	summary, err := f.lead.Summarize(ctx, text)
	if err != nil {
		metrics.RecordSummarization("failure", time.Since(start))
		return "", err
	}

	status := "fallback"
	if f.primary == nil {
		status = "success"
	}
	metrics.RecordSummarization(status, time.Since(start))
	return summary, nil
}
