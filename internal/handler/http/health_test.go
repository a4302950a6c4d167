package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPingableDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func serveHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestHealthHandler_StoreReachability(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{name: "store answers ping", wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "store unreachable", pingErr: sql.ErrConnDone, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newPingableDB(t)
			exp := mock.ExpectPing()
			if tt.pingErr != nil {
				exp.WillReturnError(tt.pingErr)
			}

			code, body := serveHealth(t, &HealthHandler{DB: db, Version: "1.4.0", ModelLoaded: true})

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "1.4.0", body.Version)
			assert.NotEmpty(t, body.Timestamp)
			assert.Contains(t, body.Checks, "database")
			assert.Contains(t, body.Checks, "classifier")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_PersistenceDisabled(t *testing.T) {
	code, body := serveHealth(t, &HealthHandler{Version: "1.4.0", ModelLoaded: true})

	// A nil store is a supported configuration, not an outage.
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "history persistence disabled", body.Checks["database"].Message)
}

func TestHealthHandler_ModelNotLoaded(t *testing.T) {
	code, body := serveHealth(t, &HealthHandler{Version: "1.4.0", ModelLoaded: false})

	// A missing model degrades every classification to UNKNOWN but the
	// service keeps serving, so the probe stays green.
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "degraded", body.Checks["classifier"].Status)
	assert.Equal(t, "model artifact not loaded", body.Checks["classifier"].Message)
}

func TestHealthHandler_PoolPressureReporting(t *testing.T) {
	tests := []struct {
		name            string
		maxOpen         int
		wantCheckStatus string
		wantUtilization bool
	}{
		{name: "bounded pool reports utilization", maxOpen: 10, wantCheckStatus: "healthy", wantUtilization: true},
		{name: "single connection pool", maxOpen: 1, wantCheckStatus: "healthy", wantUtilization: true},
		{name: "unbounded pool cannot compute pressure", maxOpen: 0, wantCheckStatus: "degraded", wantUtilization: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newPingableDB(t)
			db.SetMaxOpenConns(tt.maxOpen)
			mock.ExpectPing()

			code, body := serveHealth(t, &HealthHandler{DB: db, ModelLoaded: true})

			// Degraded checks never fail the probe.
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "healthy", body.Status)

			dbCheck := body.Checks["database"]
			assert.Equal(t, tt.wantCheckStatus, dbCheck.Status)
			require.NotNil(t, dbCheck.Details)
			assert.Equal(t, float64(tt.maxOpen), dbCheck.Details["max_open_connections"])

			_, hasUtilization := dbCheck.Details["utilization_percent"]
			assert.Equal(t, tt.wantUtilization, hasUtilization)
			if tt.wantUtilization {
				// sqlmock holds no connections open, so pressure is zero.
				assert.Equal(t, float64(0), dbCheck.Details["utilization_percent"])
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_ResponseHeaders(t *testing.T) {
	db, mock := newPingableDB(t)
	mock.ExpectPing()

	rec := httptest.NewRecorder()
	h := &HealthHandler{DB: db, ModelLoaded: true}
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
}

func TestReadyHandler(t *testing.T) {
	t.Run("store reachable", func(t *testing.T) {
		db, mock := newPingableDB(t)
		mock.ExpectPing()

		rec := httptest.NewRecorder()
		(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", rec.Body.String())
	})

	t.Run("store unreachable", func(t *testing.T) {
		db, mock := newPingableDB(t)
		mock.ExpectPing().WillReturnError(sql.ErrConnDone)

		rec := httptest.NewRecorder()
		(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("persistence disabled is ready", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&ReadyHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", rec.Body.String())
	})

	t.Run("slow ping trips the probe deadline", func(t *testing.T) {
		db, mock := newPingableDB(t)
		mock.ExpectPing().WillDelayFor(3 * time.Second)

		rec := httptest.NewRecorder()
		(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
