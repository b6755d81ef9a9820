// Package tracing provides OpenTelemetry tracing integration.
//
// It offers the application tracer, an HTTP server middleware that opens one
// span per request, and tracer provider setup for the process entry point.
//
// Example usage:
//
//	shutdown := tracing.Init("guidepedia", version)
//	defer func() { _ = shutdown(context.Background()) }()
//	handler := tracing.Middleware(mux)
package tracing
