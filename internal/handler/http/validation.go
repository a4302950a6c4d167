package http

import (
	"net/http"
)

// LimitRequestPath rejects requests whose URL path exceeds maxLen bytes
// with 414. No route in this service comes anywhere near a long path, so
// an oversized one is noise or an attack, not a real request.
func LimitRequestPath(maxLen int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxLen {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
