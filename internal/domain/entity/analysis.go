package entity

import "time"

// AnalysisRecord is one stored article analysis. Records are kept for
// operational history and pruned by the retention worker; the analysis
// pipeline itself never reads them back.
type AnalysisRecord struct {
	ID            int64
	SourceURL     string
	Query         string
	Verdict       Verdict
	Confidence    float64
	Status        CorroborationStatus
	ReliableCount int
	Summary       string
	CreatedAt     time.Time
}
