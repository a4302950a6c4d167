package summarizer

import "fmt"

// SummarizerConfig is implemented by both provider configurations so
// the clients can share length enforcement regardless of which API is
// generating the summary.
type SummarizerConfig interface {
	// GetCharacterLimit returns the maximum summary length in runes.
	GetCharacterLimit() int

	// Validate reports whether the configuration is usable.
	Validate() error
}

// Summaries shorter than 100 runes lose too much of the article to be
// useful in a verdict response; 5000 is well past what the UI shows.
const (
	minCharLimit = 100
	maxCharLimit = 5000
)

// ValidateCharacterLimit checks that limit falls within [100, 5000].
func ValidateCharacterLimit(limit int) error {
	if limit < minCharLimit {
		return fmt.Errorf("character limit %d is below minimum %d", limit, minCharLimit)
	}
	if limit > maxCharLimit {
		return fmt.Errorf("character limit %d exceeds maximum %d", limit, maxCharLimit)
	}
	return nil
}
