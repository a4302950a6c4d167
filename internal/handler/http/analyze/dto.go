// Package analyze provides HTTP handlers for the analysis endpoints.
// It includes the analysis submission handler and the recent-history listing.
package analyze

import (
	"time"

	"newstrust/internal/domain/entity"
)

// SourceDTO represents one corroborating item in the JSON response.
type SourceDTO struct {
	URL        string `json:"url" example:"https://www.reuters.com/world/example"`
	Domain     string `json:"domain" example:"reuters.com"`
	Title      string `json:"title" example:"Example headline"`
	Source     string `json:"source" example:"Reuters"`
	IsReliable bool   `json:"is_reliable" example:"true"`
}

// VerificationDTO represents the live corroboration outcome in the JSON response.
type VerificationDTO struct {
	Status        string      `json:"status" example:"VERIFIED_REAL"`
	Sources       []SourceDTO `json:"sources"`
	ReliableCount int         `json:"reliable_count" example:"2"`
	Message       string      `json:"message" example:"Verified by: reuters.com"`
}

// ResponseDTO represents the JSON structure for a completed analysis.
type ResponseDTO struct {
	Result           string          `json:"result" example:"REAL"`
	Confidence       float64         `json:"confidence" example:"99.9"`
	Summary          string          `json:"summary" example:"A condensed version of the article."`
	Explanation      []string        `json:"explanation"`
	Message          string          `json:"message" example:"Analysis complete."`
	LiveVerification VerificationDTO `json:"live_verification"`
}

// HistoryDTO represents one persisted analysis in the history listing.
type HistoryDTO struct {
	ID            int64     `json:"id" example:"1"`
	SourceURL     string    `json:"source_url,omitempty" example:"https://example.com/article"`
	Query         string    `json:"query" example:"President signs the new climate bill"`
	Verdict       string    `json:"verdict" example:"REAL"`
	Confidence    float64   `json:"confidence" example:"75"`
	Status        string    `json:"status" example:"UNVERIFIED"`
	ReliableCount int       `json:"reliable_count" example:"0"`
	Summary       string    `json:"summary"`
	CreatedAt     time.Time `json:"created_at" example:"2026-08-29T12:00:00Z"`
}

func toSourceDTOs(sources []entity.SourceEntry) []SourceDTO {
	out := make([]SourceDTO, 0, len(sources))
	for _, s := range sources {
		out = append(out, SourceDTO{
			URL:        s.URL,
			Domain:     s.Domain,
			Title:      s.Title,
			Source:     s.SourceName,
			IsReliable: s.IsReliable,
		})
	}
	return out
}
