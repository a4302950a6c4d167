package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		verdict  string
		duration time.Duration
	}{
		{
			name:     "real verdict",
			verdict:  "REAL",
			duration: 2 * time.Second,
		},
		{
			name:     "fake verdict",
			verdict:  "FAKE",
			duration: 500 * time.Millisecond,
		},
		{
			name:     "unknown verdict",
			verdict:  "UNKNOWN",
			duration: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordAnalysis(tt.verdict, tt.duration)
			})
		})
	}
}

func TestRecordVerification(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		reliableCount int
	}{
		{
			name:          "verified with reliable sources",
			status:        "VERIFIED_REAL",
			reliableCount: 3,
		},
		{
			name:          "unverified without reliable sources",
			status:        "UNVERIFIED",
			reliableCount: 0,
		},
		{
			name:          "search error",
			status:        "ERROR",
			reliableCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordVerification(tt.status, tt.reliableCount)
			})
		})
	}
}

func TestRecordAdjudication(t *testing.T) {
	for _, verdict := range []string{"REAL", "FAKE", "UNKNOWN"} {
		t.Run(verdict, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordAdjudication(verdict)
			})
		})
	}
}

func TestRecordSummarization(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		duration time.Duration
	}{
		{
			name:     "success",
			status:   "success",
			duration: time.Second,
		},
		{
			name:     "fallback",
			status:   "fallback",
			duration: 10 * time.Millisecond,
		},
		{
			name:     "failure",
			status:   "failure",
			duration: 30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSummarization(tt.status, tt.duration)
			})
		})
	}
}

func TestRecordContentFetch(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordContentFetch(true, 300*time.Millisecond)
		RecordContentFetch(false, 5*time.Second)
	})
}

func TestRecordHistoryPruned(t *testing.T) {
	tests := []struct {
		name string
		rows int64
	}{
		{name: "no rows", rows: 0},
		{name: "some rows", rows: 42},
		{name: "negative guarded", rows: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordHistoryPruned(tt.rows)
			})
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("POST", "/analyze", "200", 150*time.Millisecond)
		RecordHTTPRequest("GET", "/health", "503", time.Millisecond)
	})
}
