package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newstrust/internal/domain/entity"
	"newstrust/internal/observability/metrics"
	"newstrust/internal/repository"
	"newstrust/internal/resilience/circuitbreaker"
)

type AnalysisRepo struct {
	db *circuitbreaker.StoreBreaker
}

// NewAnalysisRepo wraps the connection in a circuit breaker so that a
// database outage fails history operations fast instead of stacking up
// blocked requests.
func NewAnalysisRepo(db *sql.DB) repository.AnalysisRepository {
	return &AnalysisRepo{db: circuitbreaker.NewStoreBreaker(db)}
}

func (repo *AnalysisRepo) Create(ctx context.Context, record *entity.AnalysisRecord) error {
	const query = `
INSERT INTO analyses (source_url, query, verdict, confidence, status, reliable_count, summary)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`

	start := time.Now()
	err := repo.db.QueryRowContext(ctx, query,
		record.SourceURL, record.Query, string(record.Verdict), record.Confidence,
		string(record.Status), record.ReliableCount, record.Summary,
	).Scan(&record.ID, &record.CreatedAt)
	metrics.RecordDBQuery("analysis_create", time.Since(start))

	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *AnalysisRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AnalysisRecord, error) {
	const query = `
SELECT id, source_url, query, verdict, confidence, status, reliable_count, summary, created_at
FROM analyses
ORDER BY created_at DESC
LIMIT $1`

	start := time.Now()
	rows, err := repo.db.QueryContext(ctx, query, limit)
	metrics.RecordDBQuery("analysis_list_recent", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*entity.AnalysisRecord, 0, limit)
	for rows.Next() {
		var r entity.AnalysisRecord
		var verdict, status string
		if err := rows.Scan(&r.ID, &r.SourceURL, &r.Query, &verdict, &r.Confidence,
			&status, &r.ReliableCount, &r.Summary, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListRecent: Scan: %w", err)
		}
		r.Verdict = entity.Verdict(verdict)
		r.Status = entity.CorroborationStatus(status)
		records = append(records, &r)
	}
	return records, rows.Err()
}

func (repo *AnalysisRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM analyses WHERE created_at < $1`

	start := time.Now()
	result, err := repo.db.ExecContext(ctx, query, cutoff)
	metrics.RecordDBQuery("analysis_delete_older_than", time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: RowsAffected: %w", err)
	}
	return rows, nil
}
