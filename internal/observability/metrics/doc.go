// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Relationship toggle outcomes per relation kind
//   - Authoring activity (articles, comments)
//   - Database pool, retry and circuit breaker metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "guidepedia/internal/observability/metrics"
//
//	metrics.RecordRelationToggle("reaction", metrics.ResultApplied, time.Since(start))
package metrics
