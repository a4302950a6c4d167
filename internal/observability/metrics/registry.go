// Package metrics declares the Prometheus instruments for the analysis
// pipeline, the HTTP surface and history persistence. Everything registers
// on the default registry and is served from /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Analysis metrics track the credibility pipeline
var (
	// AnalysesTotal counts completed analyses by final verdict
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total number of completed article analyses by final verdict",
		},
		[]string{"verdict"},
	)

	// AnalysisDuration measures end-to-end analysis duration
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "End-to-end article analysis duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// ClassificationsTotal counts classifier predictions by label
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifications_total",
			Help: "Total number of classifier predictions by label",
		},
		[]string{"label"},
	)

	// VerificationsTotal counts corroboration checks by resulting status
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifications_total",
			Help: "Total number of online corroboration checks by status",
		},
		[]string{"status"},
	)

	// VerificationReliableSources measures reliable sources found per check
	VerificationReliableSources = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verification_reliable_sources",
			Help:    "Number of registry-listed sources found per corroboration check",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	// AdjudicationsTotal counts adjudication decisions by verdict
	AdjudicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adjudications_total",
			Help: "Total number of adjudication decisions by verdict",
		},
		[]string{"verdict"},
	)

	// SummarizationsTotal counts summarization attempts by status
	SummarizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizations_total",
			Help: "Total number of summarization attempts",
		},
		[]string{"status"},
	)

	// SummarizationDuration measures time to summarize an article
	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time taken to summarize an article",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// ContentFetchAttemptsTotal counts analyze-by-URL content fetches by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of article content fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// ContentFetchDuration measures time to fetch article content
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)

// Database metrics track analysis history persistence
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// HistoryPrunedTotal counts analysis history rows removed by the retention worker
	HistoryPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_pruned_total",
			Help: "Total number of analysis history rows pruned by retention",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
