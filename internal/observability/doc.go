// Package observability groups the service's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog loggers carried through request contexts
//   - metrics: Prometheus collectors for HTTP, relationships and the pool
//   - tracing: OpenTelemetry provider setup and the HTTP span middleware
package observability
