// Package observability groups the logging, metrics and tracing
// subpackages. The analysis pipeline logs with slog, counts verdicts and
// pipeline stages in Prometheus, and traces requests with OpenTelemetry.
package observability
