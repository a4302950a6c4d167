// Package tracing wires OpenTelemetry into the HTTP surface: a middleware
// that continues W3C trace context from incoming requests and echoes the
// trace ID back, plus provider setup for span export.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("newstrust")

// GetTracer returns the tracer every span in this service is started from.
func GetTracer() trace.Tracer {
	return tracer
}
