// Package classifier provides the trained text classification model used
// to score article text as REAL or FAKE. The model is a linear classifier
// over TF-IDF features, loaded from a JSON artifact produced by training.
package classifier

import (
	"context"
	"log/slog"
	"math"

	"newstrust/internal/domain/entity"
	"newstrust/internal/observability/metrics"
)

// explanationTerms is the number of top keywords reported per prediction.
const explanationTerms = 5

// Classifier scores article text with a trained model. A Classifier with
// no loaded model is still usable: every prediction fails closed to an
// UNKNOWN result so the rest of the pipeline can proceed.
type Classifier struct {
	model *model
}

// New loads the model artifact at the configured path. A load failure is
// logged and produces a Classifier without a model rather than an error,
// so the service can start and answer with online verification only.
func New(cfg Config) *Classifier {
	m, err := loadModel(cfg.ModelPath)
	if err != nil {
		slog.Warn("classifier model unavailable, predictions will be UNKNOWN",
			slog.String("path", cfg.ModelPath),
			slog.Any("error", err))
		return &Classifier{}
	}

	slog.Info("classifier model loaded",
		slog.String("path", cfg.ModelPath),
		slog.Int("vocabulary_size", len(m.vocab)))
	return &Classifier{model: m}
}

// Predict scores text and returns the predicted label with its confidence
// as a percentage and the top keywords that drove the score. It never
// returns an error: any failure yields an UNKNOWN result with zero
// confidence.
func (c *Classifier) Predict(ctx context.Context, text string) entity.ClassificationResult {
	if c.model == nil {
		return c.unknown()
	}

	select {
	case <-ctx.Done():
		return c.unknown()
	default:
	}

	weights := c.model.vectorize(text)
	if len(weights) == 0 {
		return c.unknown()
	}

	score := c.model.score(weights)
	probability := 1.0 / (1.0 + math.Exp(-score))

	label := c.model.classes[1]
	confidence := probability
	if probability < 0.5 {
		label = c.model.classes[0]
		confidence = 1.0 - probability
	}

	result := entity.ClassificationResult{
		Label:       entity.Verdict(label),
		Confidence:  math.Round(confidence*100*100) / 100,
		Explanation: topTerms(weights, explanationTerms),
	}

	metrics.RecordClassification(string(result.Label))
	return result
}

// Loaded reports whether a model artifact was loaded at startup.
func (c *Classifier) Loaded() bool {
	return c.model != nil
}

func (c *Classifier) unknown() entity.ClassificationResult {
	metrics.RecordClassification(string(entity.VerdictUnknown))
	return entity.ClassificationResult{
		Label:       entity.VerdictUnknown,
		Confidence:  0.0,
		Explanation: []string{},
	}
}
