package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sony/gobreaker"
)

// StoreBreaker guards the analysis history store. When Postgres goes
// away, history reads and retention deletes fail fast instead of piling
// up connections, while verdict computation itself keeps working.
type StoreBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// StoreConfig trips after 5 consecutive failures and probes again after
// 30 seconds. History queries are short, so a failing store shows up as
// consecutive errors rather than a gradual failure ratio.
func StoreConfig() Config {
	return Config{
		Name:             "analysis-store",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// NewStoreBreaker wraps db with the standard store breaker settings.
func NewStoreBreaker(db *sql.DB) *StoreBreaker {
	return newStoreBreaker(db, StoreConfig())
}

func newStoreBreaker(db *sql.DB, cfg Config) *StoreBreaker {
	return &StoreBreaker{
		cb: New(cfg),
		db: db,
	}
}

// QueryContext runs a query through the breaker. With the circuit open
// it returns gobreaker.ErrOpenState without touching the store.
func (sb *StoreBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	result, err := sb.cb.Execute(func() (interface{}, error) {
		return sb.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// ExecContext runs a statement through the breaker. With the circuit
// open it returns gobreaker.ErrOpenState without touching the store.
func (sb *StoreBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := sb.cb.Execute(func() (interface{}, error) {
		return sb.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// QueryRowContext bypasses the breaker. sql.Row defers its error to
// Scan, so the breaker would never see a failure to count.
func (sb *StoreBreaker) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return sb.db.QueryRowContext(ctx, query, args...)
}

// State returns the current breaker state.
func (sb *StoreBreaker) State() gobreaker.State {
	return sb.cb.State()
}

// IsOpen reports whether the breaker is open.
func (sb *StoreBreaker) IsOpen() bool {
	return sb.cb.IsOpen()
}
