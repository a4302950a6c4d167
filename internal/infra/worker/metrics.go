package worker

import (
	"newstrust/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the retention worker.
// It embeds the shared config metrics (worker_config_*) and adds
// sweep-specific families. Rows deleted per sweep are recorded through
// the shared analysis metrics (history_pruned_rows_total).
type WorkerMetrics struct {
	*config.Metrics

	// RetentionRunsTotal counts retention sweeps by status (success, failure).
	RetentionRunsTotal *prometheus.CounterVec

	// RetentionDurationSeconds measures the duration of one retention sweep.
	// Buckets cover sub-second deletes up to multi-minute sweeps on large tables.
	RetentionDurationSeconds prometheus.Histogram

	// RetentionLastSuccessTimestamp records the Unix timestamp of the last
	// successful sweep.
	RetentionLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a new WorkerMetrics instance with all metrics
// initialized and registered with the default Prometheus registry.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		Metrics: config.NewMetrics("worker"),

		RetentionRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_retention_runs_total",
			Help: "Total number of retention sweeps by status (success/failure)",
		}, []string{"status"}),

		RetentionDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_retention_duration_seconds",
			Help:    "Duration of retention sweep execution in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300},
		}),

		RetentionLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_retention_last_success_timestamp",
			Help: "Unix timestamp of the last successful retention sweep",
		}),
	}
}

// MustRegister is a no-op method kept for the conventional initialization
// pattern; metrics are auto-registered via promauto in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {
	// No-op: metrics are auto-registered via promauto
}

// RecordSweep increments the sweep counter for the given status.
// Status should be either "success" or "failure".
func (m *WorkerMetrics) RecordSweep(status string) {
	m.RetentionRunsTotal.WithLabelValues(status).Inc()
}

// RecordSweepDuration observes the duration of one retention sweep in seconds.
func (m *WorkerMetrics) RecordSweepDuration(seconds float64) {
	m.RetentionDurationSeconds.Observe(seconds)
}

// RecordLastSuccess records the current time as the last successful sweep.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.RetentionLastSuccessTimestamp.SetToCurrentTime()
}
