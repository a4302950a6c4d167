// Package analyze orchestrates the credibility analysis pipeline: text
// classification, online corroboration, adjudication, and summarization.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"newstrust/internal/domain/entity"
	"newstrust/internal/observability/metrics"
	"newstrust/internal/observability/tracing"
	"newstrust/internal/repository"
	"newstrust/internal/usecase/adjudicate"
	"newstrust/internal/utils/text"
)

// Classifier scores article text with the trained model. Predictions
// never fail: a broken model yields an UNKNOWN result.
type Classifier interface {
	Predict(ctx context.Context, text string) entity.ClassificationResult
}

// Verifier checks a claim against live online sources.
type Verifier interface {
	Verify(ctx context.Context, query string) entity.CorroborationResult
}

// Summarizer generates a condensed version of article text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ContentFetcher retrieves article text from a URL.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// summaryUnavailable is returned when summarization fails outright.
const summaryUnavailable = "Summary unavailable due to error."

// Result is the complete outcome of one analysis.
type Result struct {
	Verdict       entity.Verdict
	Confidence    float64
	Summary       string
	Explanation   []string
	Corroboration entity.CorroborationResult
}

// Service runs the analysis pipeline. History is optional: when nil,
// analyses are not persisted.
type Service struct {
	Classifier Classifier
	Verifier   Verifier
	Summarizer Summarizer
	Fetcher    ContentFetcher
	History    repository.AnalysisRepository
}

// AnalyzeText runs the full pipeline on raw article text.
//
// Classification and corroboration run concurrently with summarization;
// the adjudication engine then merges the classifier verdict with the
// corroboration evidence into the final decision.
func (s *Service) AnalyzeText(ctx context.Context, articleText string) (*Result, error) {
	return s.analyze(ctx, articleText, "")
}

// AnalyzeURL fetches the article behind url and analyzes its content.
func (s *Service) AnalyzeURL(ctx context.Context, url string) (*Result, error) {
	if err := entity.ValidateURL(url); err != nil {
		return nil, err
	}

	start := time.Now()
	content, err := s.Fetcher.FetchContent(ctx, url)
	metrics.RecordContentFetch(err == nil, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch article content: %w", err)
	}

	return s.analyze(ctx, content, url)
}

func (s *Service) analyze(ctx context.Context, articleText, sourceURL string) (*Result, error) {
	if err := entity.ValidateArticleText(articleText); err != nil {
		return nil, err
	}

	ctx, span := tracing.GetTracer().Start(ctx, "analyze")
	defer span.End()

	start := time.Now()
	query := DeriveQuery(articleText)
	span.SetAttributes(attribute.String("analysis.query", query))

	slog.InfoContext(ctx, "analysis started",
		slog.Int("text_length", text.CountRunes(articleText)),
		slog.String("query", query))

	var (
		classification entity.ClassificationResult
		corroboration  entity.CorroborationResult
		summary        string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		classification = s.Classifier.Predict(gctx, text.Clean(articleText))
		return nil
	})
	g.Go(func() error {
		corroboration = s.Verifier.Verify(gctx, query)
		return nil
	})
	g.Go(func() error {
		var err error
		summary, err = s.Summarizer.Summarize(gctx, articleText)
		if err != nil {
			slog.WarnContext(gctx, "summarization failed", slog.Any("error", err))
			summary = summaryUnavailable
		}
		return nil
	})
	// goroutines report failures through their result values
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis aborted: %w", err)
	}

	decision := adjudicate.Decide(classification, corroboration)
	metrics.RecordAdjudication(string(decision.Label))

	result := &Result{
		Verdict:       decision.Label,
		Confidence:    decision.Confidence,
		Summary:       summary,
		Explanation:   decision.Explanation,
		Corroboration: corroboration,
	}

	duration := time.Since(start)
	span.SetAttributes(attribute.String("analysis.verdict", string(result.Verdict)))
	metrics.RecordAnalysis(string(result.Verdict), duration)
	slog.InfoContext(ctx, "analysis complete",
		slog.String("verdict", string(result.Verdict)),
		slog.Float64("confidence", result.Confidence),
		slog.String("corroboration_status", string(corroboration.Status)),
		slog.Int("reliable_count", corroboration.ReliableCount),
		slog.Duration("duration", duration))

	s.record(ctx, sourceURL, query, result)
	return result, nil
}

// record persists the analysis when a history repository is configured.
// Persistence is best effort: a failure is logged and never surfaces to
// the caller.
func (s *Service) record(ctx context.Context, sourceURL, query string, result *Result) {
	if s.History == nil {
		return
	}

	rec := &entity.AnalysisRecord{
		SourceURL:     sourceURL,
		Query:         query,
		Verdict:       result.Verdict,
		Confidence:    result.Confidence,
		Status:        result.Corroboration.Status,
		ReliableCount: result.Corroboration.ReliableCount,
		Summary:       result.Summary,
	}
	if err := s.History.Create(ctx, rec); err != nil {
		slog.WarnContext(ctx, "failed to record analysis history", slog.Any("error", err))
	}
}
