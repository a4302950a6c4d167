package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

var errProviderDown = errors.New("search provider returned 503")

func testBreaker(threshold float64, minRequests uint32, timeout time.Duration) *CircuitBreaker {
	return New(Config{
		Name:             "test-provider",
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          timeout,
		FailureThreshold: threshold,
		MinRequests:      minRequests,
	})
}

func failCalls(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_, _ = cb.Execute(func() (any, error) {
			return nil, errProviderDown
		})
	}
}

func TestNew_StartsClosed(t *testing.T) {
	cb := testBreaker(0.6, 5, time.Second)

	if cb.Name() != "test-provider" {
		t.Errorf("Name() = %q, want %q", cb.Name(), "test-provider")
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("initial state = %v, want Closed", cb.State())
	}
	if cb.IsOpen() {
		t.Error("IsOpen() = true for a fresh breaker")
	}
}

func TestExecute_PassesResultAndError(t *testing.T) {
	cb := testBreaker(0.6, 5, time.Second)

	result, err := cb.Execute(func() (any, error) {
		return "corroborating evidence", nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "corroborating evidence" {
		t.Errorf("Execute() result = %v", result)
	}

	_, err = cb.Execute(func() (any, error) {
		return nil, errProviderDown
	})
	if !errors.Is(err, errProviderDown) {
		t.Errorf("Execute() error = %v, want the provider error", err)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state after one failure = %v, want Closed", cb.State())
	}
}

func TestExecute_TripsOpenAboveFailureRatio(t *testing.T) {
	cb := testBreaker(0.6, 5, time.Second)

	// Four failures and one success stay under MinRequests for tripping,
	// the sixth call crosses both the count and the ratio.
	failCalls(cb, 4)
	if _, err := cb.Execute(func() (any, error) { return "ok", nil }); err != nil {
		t.Fatalf("success call failed: %v", err)
	}
	failCalls(cb, 1)

	if !cb.IsOpen() {
		t.Fatalf("state = %v, want Open after 5 of 6 calls failed", cb.State())
	}

	called := false
	_, err := cb.Execute(func() (any, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Execute() on open circuit = %v, want ErrOpenState", err)
	}
	if called {
		t.Error("open circuit still invoked the provider")
	}
}

func TestExecute_RecoversThroughHalfOpen(t *testing.T) {
	cb := testBreaker(0.6, 5, 100*time.Millisecond)

	failCalls(cb, 6)
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want Open", cb.State())
	}

	time.Sleep(150 * time.Millisecond)

	if _, err := cb.Execute(func() (any, error) { return "ok", nil }); err != nil {
		t.Fatalf("half-open probe failed: %v", err)
	}
	if cb.State() == gobreaker.StateOpen {
		t.Errorf("state = Open after successful half-open probe")
	}
}

func TestExecute_BelowMinRequestsStaysClosed(t *testing.T) {
	cb := testBreaker(0.5, 10, time.Second)

	// All calls fail, but the sample is too small to judge the provider.
	failCalls(cb, 4)

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want Closed below MinRequests", cb.State())
	}
}

func TestSearchProviderConfig(t *testing.T) {
	cfg := SearchProviderConfig()

	if cfg.Name != "search-provider" {
		t.Errorf("Name = %q", cfg.Name)
	}
	// Searches are single-attempt, so the breaker must absorb more noise
	// before opening than the default policy.
	def := DefaultConfig("x")
	if cfg.FailureThreshold <= def.FailureThreshold {
		t.Errorf("FailureThreshold = %v, want above default %v", cfg.FailureThreshold, def.FailureThreshold)
	}
	if cfg.MinRequests <= def.MinRequests {
		t.Errorf("MinRequests = %d, want above default %d", cfg.MinRequests, def.MinRequests)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("claude-api")

	if cfg.Name != "claude-api" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.MaxRequests != 3 || cfg.MinRequests != 5 {
		t.Errorf("request bounds = %d/%d, want 3/5", cfg.MaxRequests, cfg.MinRequests)
	}
	if cfg.FailureThreshold != 0.6 {
		t.Errorf("FailureThreshold = %v, want 0.6", cfg.FailureThreshold)
	}
}

func TestContentFetchConfig(t *testing.T) {
	cfg := ContentFetchConfig()

	if cfg.Name != "content-fetch" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
}
