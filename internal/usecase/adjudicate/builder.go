package adjudicate

// ExplanationBuilder accumulates adjudication reasons in front of the
// classifier's own explanation without mutating the caller's slice.
// Reasons are prepended: the most recent reasoning appears first in the
// built sequence, followed by earlier reasons, followed by the classifier
// keywords in their original order.
type ExplanationBuilder struct {
	reasons []string
	base    []string
}

// NewExplanationBuilder starts a builder seeded with the classifier's
// explanation. The base slice is copied so later Build calls are unaffected
// by caller-side mutation.
func NewExplanationBuilder(base []string) *ExplanationBuilder {
	copied := make([]string, len(base))
	copy(copied, base)
	return &ExplanationBuilder{base: copied}
}

// Prepend records a reason in front of all previously recorded reasons.
func (b *ExplanationBuilder) Prepend(reason string) *ExplanationBuilder {
	b.reasons = append([]string{reason}, b.reasons...)
	return b
}

// Build returns the final ordered explanation as a fresh slice.
func (b *ExplanationBuilder) Build() []string {
	out := make([]string, 0, len(b.reasons)+len(b.base))
	out = append(out, b.reasons...)
	out = append(out, b.base...)
	return out
}
