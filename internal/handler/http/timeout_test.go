package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func runWithTimeout(d time.Duration, handler http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	Timeout(d)(handler).ServeHTTP(rec, req)
	return rec
}

func TestTimeout_FastHandlerPassesThrough(t *testing.T) {
	rec := runWithTimeout(time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("verdict"))
	})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "verdict" {
		t.Errorf("body = %q, want verdict", rec.Body.String())
	}
}

func TestTimeout_SlowHandlerGets504(t *testing.T) {
	rec := runWithTimeout(50*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	})

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "request timeout") {
		t.Errorf("body = %q, want request timeout message", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestTimeout_CancelsRequestContext(t *testing.T) {
	cancelled := make(chan struct{})

	rec := runWithTimeout(50*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			close(cancelled)
		case <-time.After(time.Second):
		}
	})

	select {
	case <-cancelled:
	case <-time.After(500 * time.Millisecond):
		t.Error("handler context was never cancelled")
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
}

func TestTimeout_DeadlineVisibleToHandler(t *testing.T) {
	deadlineCh := make(chan time.Time, 1)

	start := time.Now()
	runWithTimeout(time.Second, func(w http.ResponseWriter, r *http.Request) {
		if deadline, ok := r.Context().Deadline(); ok {
			deadlineCh <- deadline
		}
		w.WriteHeader(http.StatusOK)
	})

	select {
	case deadline := <-deadlineCh:
		want := start.Add(time.Second)
		if deadline.Before(want.Add(-100*time.Millisecond)) || deadline.After(want.Add(100*time.Millisecond)) {
			t.Errorf("deadline = %v, want about %v", deadline, want)
		}
	default:
		t.Error("request context had no deadline")
	}
}

func TestTimeout_LateWriteDropped(t *testing.T) {
	wrote := make(chan struct{})

	rec := runWithTimeout(50*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		if _, err := w.Write([]byte("too late")); err != http.ErrHandlerTimeout {
			t.Errorf("late write error = %v, want http.ErrHandlerTimeout", err)
		}
		close(wrote)
	})

	select {
	case <-wrote:
	case <-time.After(time.Second):
		t.Fatal("handler never attempted its late write")
	}

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "too late") {
		t.Error("late handler write leaked into the response")
	}
}

func TestTimeout_ImplicitHeaderAndMultipleWrites(t *testing.T) {
	rec := runWithTimeout(time.Second, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("first "))
		_, _ = w.Write([]byte("second"))
	})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want implicit 200", rec.Code)
	}
	if rec.Body.String() != "first second" {
		t.Errorf("body = %q, want both writes", rec.Body.String())
	}
}
