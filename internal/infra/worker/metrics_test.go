package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// globalTestMetrics is shared across the package tests because promauto
// registers with the default registry; creating a second instance with the
// same metric names would panic.
var globalTestMetrics = NewWorkerMetrics()

func TestNewWorkerMetrics(t *testing.T) {
	metrics := globalTestMetrics

	if metrics == nil {
		t.Fatal("NewWorkerMetrics returned nil")
	}
	if metrics.Metrics == nil {
		t.Error("embedded config metrics are nil")
	}
	if metrics.RetentionRunsTotal == nil {
		t.Error("RetentionRunsTotal is nil")
	}
	if metrics.RetentionDurationSeconds == nil {
		t.Error("RetentionDurationSeconds is nil")
	}
	if metrics.RetentionLastSuccessTimestamp == nil {
		t.Error("RetentionLastSuccessTimestamp is nil")
	}

	// Should not panic (metrics are auto-registered via promauto)
	metrics.MustRegister()
}

func TestWorkerMetrics_RecordSweep(t *testing.T) {
	metrics := globalTestMetrics

	before := testutil.ToFloat64(metrics.RetentionRunsTotal.WithLabelValues("success"))
	metrics.RecordSweep("success")
	metrics.RecordSweep("success")
	metrics.RecordSweep("failure")

	after := testutil.ToFloat64(metrics.RetentionRunsTotal.WithLabelValues("success"))
	if after-before != 2 {
		t.Errorf("success runs delta = %v, want 2", after-before)
	}
	if testutil.ToFloat64(metrics.RetentionRunsTotal.WithLabelValues("failure")) < 1 {
		t.Error("failure run was not recorded")
	}
}

func TestWorkerMetrics_RecordSweepDuration(t *testing.T) {
	metrics := globalTestMetrics

	metrics.RecordSweepDuration(0.25)
	metrics.RecordSweepDuration(42)
}

func TestWorkerMetrics_RecordLastSuccess(t *testing.T) {
	metrics := globalTestMetrics

	metrics.RecordLastSuccess()
	if testutil.ToFloat64(metrics.RetentionLastSuccessTimestamp) <= 0 {
		t.Error("last success timestamp was not set")
	}
}
