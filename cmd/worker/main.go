// The worker prunes old analysis history on a cron schedule. It exposes a
// metrics server for Prometheus and a probe server for Kubernetes, and
// reports ready once the scheduler is running.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"newstrust/internal/handler/http/respond"
	pgRepo "newstrust/internal/infra/adapter/persistence/postgres"
	"newstrust/internal/infra/db"
	workerPkg "newstrust/internal/infra/worker"
	"newstrust/internal/observability/logging"
	"newstrust/internal/observability/metrics"
	"newstrust/internal/repository"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("worker exiting", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	if err := awaitMigrations(ctx, logger, database); err != nil {
		return err
	}

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	cfg, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		return fmt.Errorf("load worker configuration: %w", err)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("retention_days", cfg.RetentionDays),
		slog.Duration("sweep_timeout", cfg.SweepTimeout),
		slog.Int("health_port", cfg.HealthPort))

	startMetricsServer(ctx, logger)

	probes := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := probes.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	scheduler, err := scheduleSweeps(logger, pgRepo.NewAnalysisRepo(database), cfg, workerMetrics)
	if err != nil {
		return err
	}

	// Readiness follows the scheduler, not the process.
	probes.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	probes.SetReady(false)
	<-scheduler.Stop().Done()
	logger.Info("worker stopped")
	return nil
}

// awaitMigrations blocks until the analyses table exists. The migration
// job runs alongside this worker, so the first sweeps of a fresh
// deployment may start before the schema does.
func awaitMigrations(ctx context.Context, logger *slog.Logger, database *sql.DB) error {
	const probe = "SELECT 1 FROM analyses LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.ExecContext(ctx, probe); err == nil {
			return nil
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		select {
		case <-time.After(3 * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("migrations did not complete in time")
}

// scheduleSweeps registers the retention sweep on the cron scheduler and
// starts it.
func scheduleSweeps(logger *slog.Logger, history repository.AnalysisRepository, cfg *workerPkg.WorkerConfig, workerMetrics *workerPkg.WorkerMetrics) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	scheduler := cron.New(cron.WithLocation(loc))
	_, err = scheduler.AddFunc(cfg.CronSchedule, func() {
		runRetentionSweep(logger, history, cfg, workerMetrics)
	})
	if err != nil {
		return nil, fmt.Errorf("add retention sweep to scheduler: %w", err)
	}
	scheduler.Start()
	return scheduler, nil
}

// runRetentionSweep deletes analysis records older than the retention window.
func runRetentionSweep(logger *slog.Logger, history repository.AnalysisRepository, cfg *workerPkg.WorkerConfig, workerMetrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("retention sweep started", slog.Int("retention_days", cfg.RetentionDays))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SweepTimeout)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
	rows, err := history.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("retention sweep failed", slog.Any("error", respond.SanitizeError(err)))
		workerMetrics.RecordSweep("failure")
		workerMetrics.RecordSweepDuration(time.Since(startTime).Seconds())
		return
	}

	workerMetrics.RecordSweep("success")
	workerMetrics.RecordSweepDuration(time.Since(startTime).Seconds())
	workerMetrics.RecordLastSuccess()
	metrics.RecordHistoryPruned(rows)

	logger.Info("retention sweep completed",
		slog.Int64("rows_deleted", rows),
		slog.Time("cutoff", cutoff),
		slog.Duration("duration", time.Since(startTime)),
	)
}
