// Package http provides the analysis HTTP surface: request handlers,
// health probes, and middleware.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const (
	healthCheckTimeout = 5 * time.Second
	readyCheckTimeout  = 2 * time.Second

	// poolPressureThreshold is the in-use fraction of the history store
	// connection pool above which the database check reports degraded.
	poolPressureThreshold = 0.8
)

// HealthResponse is the body served on /health.
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Version   string           `json:"version"`
}

// Check reports the health of a single dependency. Status is one of
// "healthy", "degraded" or "unhealthy"; only "unhealthy" fails the probe.
type Check struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func healthyCheck() Check            { return Check{Status: "healthy"} }
func degradedCheck(msg string) Check { return Check{Status: "degraded", Message: msg} }
func unhealthyCheck(err error) Check { return Check{Status: "unhealthy", Message: err.Error()} }

// HealthHandler serves /health. It reports classifier model availability
// and, when history persistence is configured, store connectivity.
type HealthHandler struct {
	// DB is the analysis history store. Nil when persistence is disabled,
	// which is a valid configuration and not reported as unhealthy.
	DB      *sql.DB
	Version string

	// ModelLoaded reports whether the classifier model artifact was
	// loaded. Without it every text classifies as UNKNOWN, so the check
	// reports degraded but the service stays up.
	ModelLoaded bool
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]Check{
		"classifier": h.classifierCheck(),
		"database":   h.storeCheck(ctx),
	}

	status, code := "healthy", http.StatusOK
	for _, c := range checks {
		if c.Status == "unhealthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
	if err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

func (h *HealthHandler) classifierCheck() Check {
	if !h.ModelLoaded {
		return degradedCheck("model artifact not loaded")
	}
	return healthyCheck()
}

// storeCheck pings the history store and inspects connection pool pressure.
func (h *HealthHandler) storeCheck(ctx context.Context) Check {
	if h.DB == nil {
		return Check{Status: "healthy", Message: "history persistence disabled"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		return unhealthyCheck(err)
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// MaxOpenConnections of 0 means the pool is unbounded, so pressure
	// cannot be computed.
	if stats.MaxOpenConnections == 0 {
		c := degradedCheck("connection pool max connections not configured")
		c.Details = details
		return c
	}

	pressure := float64(stats.InUse) / float64(stats.MaxOpenConnections)
	details["utilization_percent"] = pressure * 100

	c := healthyCheck()
	if pressure >= poolPressureThreshold {
		c = degradedCheck("connection pool utilization above 80%")
	}
	c.Details = details
	return c
}

// ReadyHandler serves /ready for Kubernetes readiness probes. The service
// is ready once the history store, when configured, answers a ping.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			http.Error(w, "database not ready: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	writeProbeText(w, "ready")
}

// LiveHandler serves /live. Answering at all is the liveness signal.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeProbeText(w, "alive")
}

func writeProbeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Printf("probe: failed to write response: %v", err)
	}
}
