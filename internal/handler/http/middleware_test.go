package http

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func analyzeRequest(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestRateLimiter_BlocksBeyondLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		requests int
		want     []int
	}{
		{"under the limit", 5, 5, []int{200, 200, 200, 200, 200}},
		{"one past the limit", 5, 6, []int{200, 200, 200, 200, 200, 429}},
		{"well past the limit", 3, 5, []int{200, 200, 200, 429, 429}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRateLimiter(tt.limit, time.Minute).Limit(okHandler())

			for i := 0; i < tt.requests; i++ {
				rr := httptest.NewRecorder()
				handler.ServeHTTP(rr, analyzeRequest("192.168.1.1:12345"))
				if rr.Code != tt.want[i] {
					t.Errorf("request %d: status = %d, want %d", i+1, rr.Code, tt.want[i])
				}
			}
		})
	}
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	handler := NewRateLimiter(5, time.Second).Limit(okHandler())

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, analyzeRequest("192.168.1.1:12345"))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, analyzeRequest("192.168.1.1:12345"))
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("6th request: status = %d, want 429", rr.Code)
	}

	time.Sleep(1100 * time.Millisecond)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, analyzeRequest("192.168.1.1:12345"))
	if rr.Code != http.StatusOK {
		t.Errorf("after refill: status = %d, want 200", rr.Code)
	}
}

func TestRateLimiter_BucketsAreSeparatePerIP(t *testing.T) {
	handler := NewRateLimiter(3, time.Minute).Limit(okHandler())

	for i := 0; i < 4; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, analyzeRequest("192.168.1.1:12345"))
		want := http.StatusOK
		if i == 3 {
			want = http.StatusTooManyRequests
		}
		if rr.Code != want {
			t.Errorf("first client request %d: status = %d, want %d", i+1, rr.Code, want)
		}
	}

	// A second client still has its full budget.
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, analyzeRequest("192.168.1.2:12345"))
		if rr.Code != http.StatusOK {
			t.Errorf("second client request %d: status = %d, want 200", i+1, rr.Code)
		}
	}
}

func TestRateLimiter_ConcurrentRequests(t *testing.T) {
	handler := NewRateLimiter(10, time.Second).Limit(okHandler())

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, blocked := 0, 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, analyzeRequest("192.168.1.1:12345"))

			mu.Lock()
			switch rr.Code {
			case http.StatusOK:
				ok++
			case http.StatusTooManyRequests:
				blocked++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if ok != 10 || blocked != 10 {
		t.Errorf("got %d allowed / %d blocked, want 10/10", ok, blocked)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"X-Forwarded-For single IP", "192.168.1.1:12345", "203.0.113.195", "", "203.0.113.195"},
		{"X-Forwarded-For chain uses first hop", "192.168.1.1:12345", "203.0.113.195, 70.41.3.18, 150.172.238.178", "", "203.0.113.195"},
		{"X-Real-IP", "192.168.1.1:12345", "", "203.0.113.195", "203.0.113.195"},
		{"X-Forwarded-For beats X-Real-IP", "192.168.1.1:12345", "203.0.113.195", "198.51.100.178", "203.0.113.195"},
		{"invalid X-Real-IP ignored", "192.168.1.1:12345", "", "invalid-ip", "192.168.1.1"},
		{"RemoteAddr fallback", "192.168.1.1:12345", "", "", "192.168.1.1"},
		{"RemoteAddr without port", "192.168.1.1", "", "", "192.168.1.1"},
		{"IPv6 RemoteAddr", "[2001:db8::1]:12345", "", "", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			if got := extractIP(req); got != tt.want {
				t.Errorf("extractIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFirstIP(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"203.0.113.195", "203.0.113.195"},
		{"203.0.113.195, 70.41.3.18", "203.0.113.195"},
		{"invalid, 70.41.3.18", ""},
		{"", ""},
		{"2001:db8::1", "2001:db8::1"},
		{"2001:db8::1, 2001:db8::2", "2001:db8::1"},
	}

	for _, tt := range tests {
		if got := parseFirstIP(tt.input); got != tt.want {
			t.Errorf("parseFirstIP(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLogging_RecordsRequestOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"failed to fetch article content"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/analyze?mode=url", nil)
	req.Header.Set("User-Agent", "newstrust-cli/1.0")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rr.Code)
	}

	entry := buf.String()
	for _, want := range []string{
		`"msg":"request completed"`,
		`"method":"POST"`,
		`"path":"/api/analyze"`,
		`"query":"mode=url"`,
		`"status":502`,
		`"user_agent":"newstrust-cli/1.0"`,
	} {
		if !strings.Contains(entry, want) {
			t.Errorf("log entry missing %s:\n%s", want, entry)
		}
	}
}

func TestRecover_Returns500AndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("classifier state corrupted")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Error("panic was not logged")
	}
	if !strings.Contains(buf.String(), "classifier state corrupted") {
		t.Error("panic value missing from the log entry")
	}
}

func TestRecover_NoPanicPassesThrough(t *testing.T) {
	handler := Recover(slog.Default())(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestLimitRequestBody(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		bodySize int
		want     int
	}{
		{"within limit", 1024, 512, http.StatusOK},
		{"exactly at limit", 1024, 1024, http.StatusOK},
		{"over limit", 100, 200, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := LimitRequestBody(tt.maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := io.ReadAll(r.Body); err != nil {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))

			body := strings.NewReader(strings.Repeat("a", tt.bodySize))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/analyze", body))

			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestRateLimiter_SweepDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)
	handler := rl.Limit(okHandler())

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, analyzeRequest(fmt.Sprintf("192.168.1.%d:12345", i+1)))
		if rr.Code != http.StatusOK {
			t.Fatalf("request from client %d: status = %d, want 200", i+1, rr.Code)
		}
	}

	rl.mu.Lock()
	if len(rl.clients) != 5 {
		t.Errorf("tracked clients = %d, want 5", len(rl.clients))
	}
	// Age every bucket past the idle cutoff and force the next sweep.
	for _, cl := range rl.clients {
		cl.lastSeen = time.Now().Add(-time.Hour)
	}
	rl.lastSweep = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, analyzeRequest("10.0.0.1:12345"))
	if rr.Code != http.StatusOK {
		t.Fatalf("post-sweep request: status = %d, want 200", rr.Code)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.clients) != 1 {
		t.Errorf("tracked clients after sweep = %d, want only the new one", len(rl.clients))
	}
}
