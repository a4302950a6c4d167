package db

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newstrust/internal/pkg/config"
)

// PoolConfig holds connection pool settings for the analysis store.
// Both the API server and the retention worker share one Postgres, so
// the pool stays small enough that two processes fit under the usual
// max_connections default.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns the pool settings used when no DB_* variable
// overrides them.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open connects to the Postgres given by DATABASE_URL, applies the pool
// settings and verifies the connection with a 5-second ping. A store
// that cannot be reached at startup is fatal; without it neither verdict
// history nor retention sweeps can work.
func Open() *sql.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}

	cfg := poolConfigFromEnv()
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	slog.Info("database connection established successfully")
	return db
}

// poolConfigFromEnv overlays DB_* environment variables on the default
// pool settings. Invalid values keep the default, same fail-open rule
// as the worker configuration.
func poolConfigFromEnv() PoolConfig {
	cfg := DefaultPoolConfig()

	conns := func(v int) error { return config.ValidateIntRange(v, 1, 1000) }
	lifetime := func(d time.Duration) error { return config.ValidateDuration(d, time.Minute, 24*time.Hour) }

	cfg.MaxOpenConns = config.LoadInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns, conns).Value
	cfg.MaxIdleConns = config.LoadInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns, conns).Value
	cfg.ConnMaxLifetime = config.LoadDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime, lifetime).Value
	cfg.ConnMaxIdleTime = config.LoadDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime, lifetime).Value

	return cfg
}
