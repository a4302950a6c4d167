package summarizer

import (
	"context"
	"strings"
)

// shortTextWords is the word count below which text is returned unchanged.
const shortTextWords = 50

// leadSentences is the number of sentences kept by the extractive fallback.
const leadSentences = 3

// Lead is an extractive summarizer that keeps the leading sentences of an
// article. It is used when no AI provider is configured and as the
// fallback when a provider call fails.
type Lead struct{}

// NewLead creates a new Lead summarizer.
func NewLead() *Lead {
	return &Lead{}
}

// Summarize returns the text unchanged when it is shorter than 50 words,
// otherwise it returns the first three sentences.
func (l *Lead) Summarize(_ context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	if len(strings.Fields(text)) < shortTextWords {
		return text, nil
	}

	sentences := strings.Split(text, ".")
	if len(sentences) > leadSentences {
		sentences = sentences[:leadSentences]
	}
	return strings.Join(sentences, ".") + ".", nil
}
