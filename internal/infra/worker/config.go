package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newstrust/internal/pkg/config"
)

// WorkerConfig holds the configuration for the retention worker.
// The worker periodically prunes old analysis records from the history
// table on a cron schedule.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have defaults and validation rules so the worker can operate
// safely even with invalid or missing configuration.
type WorkerConfig struct {
	// CronSchedule is the cron expression for the retention sweep.
	// Format: "minute hour day month weekday"
	// Example: "30 4 * * *" (every day at 4:30)
	// Validation: Must be a valid cron expression (5 fields)
	// Default: "30 4 * * *"
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Example: "UTC", "Asia/Tokyo", "America/New_York"
	// Validation: Must be a valid IANA timezone name
	// Default: "UTC"
	Timezone string

	// RetentionDays is how many days of analysis history to keep.
	// Records older than this are deleted by the sweep.
	// Range: 1-3650
	// Default: 30
	RetentionDays int

	// SweepTimeout is the maximum duration for a single retention sweep.
	// After this timeout, the delete operation is cancelled.
	// Range: 1 minute to 1 hour
	// Default: 5 minutes
	SweepTimeout time.Duration

	// HealthPort is the port number for the health check HTTP server.
	// Range: 1024-65535 (avoid privileged ports)
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with sensible default values.
// The defaults run one sweep per day in the early morning, keep a month
// of history, and serve health checks on the common exporter port.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:  "30 4 * * *",
		Timezone:      "UTC",
		RetentionDays: 30,
		SweepTimeout:  5 * time.Minute,
		HealthPort:    9091,
	}
}

// Validate checks if the configuration values are valid.
// Each field is validated with the reusable validators from
// internal/pkg/config; if multiple fields are invalid, all errors are
// collected and returned together.
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errors = append(errors, fmt.Errorf("cron schedule: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidateIntRange(c.RetentionDays, 1, 3650); err != nil {
		errors = append(errors, fmt.Errorf("retention days: %w", err))
	}

	if err := config.ValidateDuration(c.SweepTimeout, 1*time.Minute, 1*time.Hour); err != nil {
		errors = append(errors, fmt.Errorf("sweep timeout: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to default values on failure.
//
// This function implements the fail-open strategy:
//  1. Start with DefaultConfig() as base
//  2. Load each field from environment variables
//  3. Validate each loaded value
//  4. If validation fails: use default value, log warning, increment metrics
//  5. Never return error - always return a valid configuration
//
// Environment variables:
//   - RETENTION_CRON_SCHEDULE: Cron expression (default: "30 4 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - HISTORY_RETENTION_DAYS: Integer 1-3650 (default: 30)
//   - SWEEP_TIMEOUT: Duration string, e.g., "5m" (default: 5 minutes)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	// noteFallback logs and counts one rejected field.
	noteFallback := func(field string, warnings []string) {
		fallbackApplied = true
		metrics.RecordFallback(field)
		for _, warning := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	schedule := config.LoadString("RETENTION_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = schedule.Value
	if schedule.FallbackApplied {
		noteFallback("cron_schedule", schedule.Warnings)
	}

	timezone := config.LoadString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = timezone.Value
	if timezone.FallbackApplied {
		noteFallback("timezone", timezone.Warnings)
	}

	retention := config.LoadInt("HISTORY_RETENTION_DAYS", cfg.RetentionDays, func(v int) error {
		return config.ValidateIntRange(v, 1, 3650)
	})
	cfg.RetentionDays = retention.Value
	if retention.FallbackApplied {
		noteFallback("retention_days", retention.Warnings)
	}

	sweepTimeout := config.LoadDuration("SWEEP_TIMEOUT", cfg.SweepTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 1*time.Hour)
	})
	cfg.SweepTimeout = sweepTimeout.Value
	if sweepTimeout.FallbackApplied {
		noteFallback("sweep_timeout", sweepTimeout.Warnings)
	}

	healthPort := config.LoadInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = healthPort.Value
	if healthPort.FallbackApplied {
		noteFallback("health_port", healthPort.Warnings)
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	// Always return valid config (fail-open strategy)
	return &cfg, nil
}
