package http

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"guidepedia/internal/handler/http/article"
	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/middleware"
	"guidepedia/internal/handler/http/pathutil"
	"guidepedia/internal/handler/http/profile"
	"guidepedia/internal/handler/http/requestid"
	"guidepedia/internal/observability/tracing"
	artUC "guidepedia/internal/usecase/article"
	profUC "guidepedia/internal/usecase/profile"
)

// Deps carries everything the router mounts. DB and Breaker are nil on the
// in-memory store; Limiter is nil when rate limiting is off.
type Deps struct {
	Articles *artUC.Service
	Profiles *profUC.Service
	Auth     *auth.Authenticator
	Limiter  *middleware.RateLimiter
	Logger   *slog.Logger
	DB       *sql.DB
	Breaker  Breaker
	Version  string
	Timeout  time.Duration
	Limits   InputLimits
}

// NewRouter builds the full handler: probes and metrics plus the API
// routes behind the middleware stack.
//
// Order, outermost first: request id, security headers, tracing, logging,
// metrics, recover, timeout, input limits, rate limit, authentication.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", &HealthHandler{DB: d.DB, Breaker: d.Breaker, Version: d.Version})
	mux.Handle("GET /ready", &ReadyHandler{DB: d.DB})
	mux.Handle("GET /live", LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())

	article.Register(mux, d.Articles)
	profile.Register(mux, d.Profiles)

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limits := d.Limits
	if limits == (InputLimits{}) {
		limits = DefaultInputLimits()
	}

	mws := []Middleware{
		requestid.Middleware,
		SecurityHeaders(),
		tracing.Middleware,
		Logging(logger),
		MetricsMiddleware,
		Recover(),
	}
	if d.Timeout > 0 {
		mws = append(mws, Timeout(d.Timeout), Recover())
	}
	mws = append(mws, InputValidation(limits))
	if d.Limiter != nil {
		mws = append(mws, d.Limiter.Middleware)
	}
	if d.Auth != nil {
		mws = append(mws, d.Auth.Middleware)
	}
	return Chain(pathutil.RecordRoute(mux), mws...)
}
