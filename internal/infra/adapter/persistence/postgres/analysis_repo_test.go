package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"newstrust/internal/domain/entity"
	"newstrust/internal/infra/adapter/persistence/postgres"
)

func rows(records ...*entity.AnalysisRecord) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{
		"id", "source_url", "query", "verdict", "confidence",
		"status", "reliable_count", "summary", "created_at",
	})
	for _, rec := range records {
		r.AddRow(rec.ID, rec.SourceURL, rec.Query, string(rec.Verdict), rec.Confidence,
			string(rec.Status), rec.ReliableCount, rec.Summary, rec.CreatedAt)
	}
	return r
}

func TestAnalysisRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	record := &entity.AnalysisRecord{
		SourceURL:     "",
		Query:         "nasa announces moon mission",
		Verdict:       entity.VerdictReal,
		Confidence:    99.9,
		Status:        entity.StatusVerifiedReal,
		ReliableCount: 2,
		Summary:       "NASA announced a new moon mission.",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO analyses`)).
		WithArgs(record.SourceURL, record.Query, "REAL", 99.9, "VERIFIED_REAL", 2, record.Summary).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), now))

	repo := postgres.NewAnalysisRepo(db)
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if record.ID != 42 {
		t.Errorf("ID = %d, want 42", record.ID)
	}
	if !record.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", record.CreatedAt, now)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnalysisRepo_ListRecent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	want := []*entity.AnalysisRecord{
		{
			ID: 2, Query: "second claim", Verdict: entity.VerdictFake, Confidence: 75.5,
			Status: entity.StatusUnverified, ReliableCount: 0, CreatedAt: now,
		},
		{
			ID: 1, Query: "first claim", Verdict: entity.VerdictReal, Confidence: 99.9,
			Status: entity.StatusVerifiedReal, ReliableCount: 3, CreatedAt: now.Add(-time.Hour),
		},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, source_url, query`)).
		WithArgs(10).
		WillReturnRows(rows(want...))

	repo := postgres.NewAnalysisRepo(db)
	got, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnalysisRepo_DeleteOlderThan(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	cutoff := time.Now().AddDate(0, 0, -30)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM analyses WHERE created_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	repo := postgres.NewAnalysisRepo(db)
	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan err=%v", err)
	}
	if deleted != 7 {
		t.Errorf("deleted = %d, want 7", deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAnalysisRepo_CreateError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO analyses`)).
		WillReturnError(errors.New("connection refused"))

	repo := postgres.NewAnalysisRepo(db)
	err := repo.Create(context.Background(), &entity.AnalysisRecord{Query: "q"})
	if err == nil {
		t.Fatal("expected error")
	}
}
