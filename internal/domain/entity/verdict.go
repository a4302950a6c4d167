// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as ClassificationResult,
// CorroborationResult and AdjudicationDecision, along with their validation rules
// and domain-specific errors.
package entity

import "strings"

// Verdict is the label assigned to an article by the classifier or the
// adjudication engine.
type Verdict string

const (
	// VerdictReal indicates the article is considered credible.
	VerdictReal Verdict = "REAL"
	// VerdictFake indicates the article is considered not credible.
	VerdictFake Verdict = "FAKE"
	// VerdictUnknown indicates no trustworthy judgement could be made.
	VerdictUnknown Verdict = "UNKNOWN"
)

// CorroborationStatus is the outcome of an online corroboration query.
type CorroborationStatus string

const (
	// StatusVerifiedReal means at least one registry-listed outlet reported the story.
	StatusVerifiedReal CorroborationStatus = "VERIFIED_REAL"
	// StatusUnverified means the search ran but produced no registry match.
	StatusUnverified CorroborationStatus = "UNVERIFIED"
	// StatusError means the search provider failed (timeout, rate limit, protocol error).
	StatusError CorroborationStatus = "ERROR"
)

// ClassificationResult is the normalized output of the text classifier.
// Explanation is ordered most salient first; the adjudication engine prepends
// its own reasoning when it overrides or downgrades the label.
type ClassificationResult struct {
	Label       Verdict
	Confidence  float64 // 0..100
	Explanation []string
}

// SourceEntry is one corroborating item found online.
// IsReliable is computed once at creation against the reliability registry
// and never recomputed.
type SourceEntry struct {
	URL        string
	Domain     string
	Title      string
	SourceName string
	IsReliable bool
}

// CorroborationResult is the outcome of one corroboration query.
// It is constructed fresh per request, immutable after construction, and
// never persisted.
type CorroborationResult struct {
	Status        CorroborationStatus
	Sources       []SourceEntry // search-provider order preserved
	ReliableCount int
	Message       string
}

// AdjudicationDecision is the final reconciled verdict.
// Invariant: Label == VerdictUnknown implies Confidence == 0.0.
type AdjudicationDecision struct {
	Label       Verdict
	Confidence  float64
	Explanation []string
}

// DeriveDomain extracts the host segment from a URL the way the corroboration
// client expects it: scheme stripped, leading "www." removed, everything after
// the first path separator dropped. It never fails; malformed input yields a
// best-effort domain string.
func DeriveDomain(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[i+2:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "www.")
}
