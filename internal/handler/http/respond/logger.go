package respond

import (
	"log/slog"
	"net/http"

	"guidepedia/internal/observability/logging"
)

// loggerFrom returns the request-scoped logger installed by the logging
// middleware, tagging it with the request and trace ids when it is missing.
func loggerFrom(r *http.Request) *slog.Logger {
	ctx := r.Context()
	if logging.HasLogger(ctx) {
		return logging.FromContext(ctx)
	}
	return logging.WithTrace(ctx, logging.WithRequestID(ctx, slog.Default()))
}
