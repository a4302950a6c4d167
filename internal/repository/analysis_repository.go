// Package repository defines persistence interfaces for the domain.
package repository

import (
	"context"
	"time"

	"newstrust/internal/domain/entity"
)

// AnalysisRepository stores completed analyses for operational history.
type AnalysisRepository interface {
	// Create persists a new analysis record and fills in its ID.
	Create(ctx context.Context, record *entity.AnalysisRecord) error

	// ListRecent returns up to limit records ordered by creation time,
	// newest first.
	ListRecent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error)

	// DeleteOlderThan removes records created before cutoff and returns
	// the number of rows deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
