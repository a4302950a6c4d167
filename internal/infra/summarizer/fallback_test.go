package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubSummarizer struct {
	summary string
	err     error
	calls   int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.summary, s.err
}

func TestFallback_primarySucceeds(t *testing.T) {
	primary := &stubSummarizer{summary: "the summary"}
	f := NewFallback(primary)

	got, err := f.Summarize(context.Background(), "some article text")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "the summary" {
		t.Errorf("got %q, want primary summary", got)
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want 1", primary.calls)
	}
}

func TestFallback_primaryFailsUsesLead(t *testing.T) {
	primary := &stubSummarizer{err: errors.New("api down")}
	f := NewFallback(primary)

	long := strings.Repeat("The committee approved the budget after a long debate. ", 20)
	got, err := f.Summarize(context.Background(), long)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got == "" {
		t.Fatal("expected lead summary, got empty")
	}
	if strings.Count(got, ".") != 3 {
		t.Errorf("lead summary has %d sentences, want 3", strings.Count(got, "."))
	}
}

func TestFallback_nilPrimary(t *testing.T) {
	f := NewFallback(nil)

	got, err := f.Summarize(context.Background(), "Short text stays as it is.")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "Short text stays as it is." {
		t.Errorf("got %q", got)
	}
}
