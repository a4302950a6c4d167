package summarizer

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SummaryMetricsRecorder records how the AI summary step behaves. Both
// provider clients report through it, so summary length and latency are
// comparable whichever API the deployment uses. Tests inject a stub.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in runes.
	RecordLength(length int)

	// RecordLimitExceeded counts a summary over the configured rune limit.
	RecordLimitExceeded()

	// RecordCompliance records whether the last summary stayed within the limit.
	RecordCompliance(withinLimit bool)

	// RecordDuration records the wall time of one summarization API call.
	RecordDuration(duration time.Duration)
}

// PrometheusSummaryMetrics is the production SummaryMetricsRecorder.
type PrometheusSummaryMetrics struct {
	lengthHistogram   prometheus.Histogram
	exceededCounter   prometheus.Counter
	complianceGauge   prometheus.Gauge
	durationHistogram prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrRegister registers c with the default registry, or returns the
// collector already registered under the same name.
func getOrRegister[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(C)
		}
	}
	return c
}

// NewPrometheusSummaryMetrics returns the process-wide summary metrics
// recorder. Both the Claude and OpenAI clients call this, so it is a
// singleton to keep registration single.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: getOrRegister(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "claim_summary_length_chars",
				Help:    "Distribution of claim summary lengths in Unicode runes",
				Buckets: []float64{150, 300, 450, 600, 750, 900, 1200, 1800},
			})),
			exceededCounter: getOrRegister(prometheus.NewCounter(prometheus.CounterOpts{
				Name: "claim_summary_limit_exceeded_total",
				Help: "Summaries that came back over the configured rune limit",
			})),
			complianceGauge: getOrRegister(prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "claim_summary_within_limit",
				Help: "Whether the most recent summary stayed within the rune limit (0 or 1)",
			})),
			durationHistogram: getOrRegister(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "claim_summary_generation_seconds",
				Help:    "Wall time of one summarization call to the provider API",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			})),
		}
	})
	return prometheusMetricsInstance
}

func (p *PrometheusSummaryMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

func (p *PrometheusSummaryMetrics) RecordLimitExceeded() {
	p.exceededCounter.Inc()
}

func (p *PrometheusSummaryMetrics) RecordCompliance(withinLimit bool) {
	if withinLimit {
		p.complianceGauge.Set(1.0)
	} else {
		p.complianceGauge.Set(0.0)
	}
}

func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
