package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"
)

// artifact is the on-disk representation of a trained linear model over
// TF-IDF features. Vocabulary maps each term to its feature index; Idf,
// Coef and Intercept carry the fitted weights. Classes holds the label
// for a negative and a positive decision score, in that order.
type artifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	Idf        []float64      `json:"idf"`
	Coef       []float64      `json:"coef"`
	Intercept  float64        `json:"intercept"`
	Classes    []string       `json:"classes"`
}

// model is a loaded, validated artifact ready for scoring.
type model struct {
	vocab     map[string]int
	idf       []float64
	coef      []float64
	intercept float64
	classes   [2]string
}

// loadModel reads and validates a model artifact from disk.
func loadModel(path string) (*model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if len(a.Vocabulary) == 0 {
		return nil, fmt.Errorf("model artifact has empty vocabulary")
	}
	if len(a.Classes) != 2 {
		return nil, fmt.Errorf("model artifact must define exactly 2 classes, got %d", len(a.Classes))
	}
	if len(a.Idf) != len(a.Vocabulary) || len(a.Coef) != len(a.Vocabulary) {
		return nil, fmt.Errorf("model artifact weight lengths mismatch: vocab=%d idf=%d coef=%d",
			len(a.Vocabulary), len(a.Idf), len(a.Coef))
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= len(a.Idf) {
			return nil, fmt.Errorf("model artifact term %q has out-of-range index %d", term, idx)
		}
	}

	return &model{
		vocab:     a.Vocabulary,
		idf:       a.Idf,
		coef:      a.Coef,
		intercept: a.Intercept,
		classes:   [2]string{a.Classes[0], a.Classes[1]},
	}, nil
}

// termWeight pairs a vocabulary term with its TF-IDF weight in a document.
type termWeight struct {
	term   string
	weight float64
}

// vectorize computes L2-normalized TF-IDF weights for the vocabulary terms
// present in text. Terms outside the vocabulary are ignored.
func (m *model) vectorize(text string) []termWeight {
	counts := make(map[string]int)
	for _, tok := range tokenize(text) {
		if _, ok := m.vocab[tok]; ok {
			counts[tok]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	weights := make([]termWeight, 0, len(counts))
	var norm float64
	for term, tf := range counts {
		w := float64(tf) * m.idf[m.vocab[term]]
		weights = append(weights, termWeight{term: term, weight: w})
		norm += w * w
	}

	norm = math.Sqrt(norm)
	for i := range weights {
		weights[i].weight /= norm
	}
	return weights
}

// score computes the decision function value for the given weights.
func (m *model) score(weights []termWeight) float64 {
	s := m.intercept
	for _, tw := range weights {
		s += m.coef[m.vocab[tw.term]] * tw.weight
	}
	return s
}

// topTerms returns up to n terms with the highest TF-IDF weight.
func topTerms(weights []termWeight, n int) []string {
	sorted := make([]termWeight, len(weights))
	copy(sorted, weights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].weight > sorted[j].weight
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	terms := make([]string, 0, n)
	for _, tw := range sorted[:n] {
		terms = append(terms, tw.term)
	}
	return terms
}

// tokenize splits text into lowercase word tokens. Tokens of a single
// character are dropped to match the training vectorizer.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
