// Package responsewriter captures the status code and body size of a
// response so the request log can report what was actually sent.
package responsewriter

import (
	"net/http"
)

// ResponseWriter wraps http.ResponseWriter and records what passes
// through it.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

// Wrap returns a recording wrapper around w.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

// WriteHeader records the first status code written; repeated calls are
// ignored, matching net/http's superfluous-WriteHeader behavior.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.status != 0 {
		return
	}
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards the body bytes and accumulates their count. A write
// before WriteHeader implies 200, as with the unwrapped writer.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the status sent to the client, or 200 if the
// handler never wrote one explicitly.
func (w *ResponseWriter) StatusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// BytesWritten returns the number of body bytes written so far.
func (w *ResponseWriter) BytesWritten() int {
	return w.bytes
}

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
