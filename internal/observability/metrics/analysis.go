package metrics

import "time"

// RecordAnalysis records a completed end-to-end analysis.
func RecordAnalysis(verdict string, duration time.Duration) {
	AnalysesTotal.WithLabelValues(verdict).Inc()
	AnalysisDuration.Observe(duration.Seconds())
}

// RecordClassification records a classifier prediction.
func RecordClassification(label string) {
	ClassificationsTotal.WithLabelValues(label).Inc()
}

// RecordVerification records a corroboration check outcome.
func RecordVerification(status string, reliableCount int) {
	VerificationsTotal.WithLabelValues(status).Inc()
	VerificationReliableSources.Observe(float64(reliableCount))
}

// RecordAdjudication records a final adjudication decision.
func RecordAdjudication(verdict string) {
	AdjudicationsTotal.WithLabelValues(verdict).Inc()
}

// RecordSummarization records a summarization attempt.
// Status is "success", "fallback", or "failure".
func RecordSummarization(status string, duration time.Duration) {
	SummarizationsTotal.WithLabelValues(status).Inc()
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordContentFetch records an article content fetch attempt.
func RecordContentFetch(success bool, duration time.Duration) {
	result := "failure"
	if success {
		result = "success"
	}
	ContentFetchAttemptsTotal.WithLabelValues(result).Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordDBQuery records a database query with its duration.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordHistoryPruned records rows removed by the retention sweep.
func RecordHistoryPruned(rows int64) {
	if rows > 0 {
		HistoryPrunedTotal.Add(float64(rows))
	}
}
