package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout caps how long a single request may run. The analysis pipeline
// calls the classifier, a search provider and an AI summarizer in turn,
// so a stuck upstream could otherwise hold the connection open
// indefinitely. On expiry the client gets 504 Gateway Timeout and the
// request context is cancelled so in-flight upstream calls stop.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			tw := &timeoutWriter{ResponseWriter: w}
			done := make(chan struct{})
			go func() {
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				tw.timeout()
			}
		})
	}
}

// timeoutWriter serializes access between the handler goroutine and the
// timeout path. Whichever side writes first wins; later writes from the
// losing side are dropped.
type timeoutWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (w *timeoutWriter) timeout() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.timedOut = true
	if w.written {
		return
	}
	w.written = true
	w.ResponseWriter.Header().Set("Content-Type", "application/json")
	w.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
	_, _ = w.ResponseWriter.Write([]byte(`{"error":"request timeout"}`))
}

func (w *timeoutWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut || w.written {
		return
	}
	w.written = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *timeoutWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}
