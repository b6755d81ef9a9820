package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"guidepedia/internal/app"
	"guidepedia/internal/config"
	hhttp "guidepedia/internal/handler/http"
	"guidepedia/internal/handler/http/auth"
	"guidepedia/internal/handler/http/middleware"
	"guidepedia/internal/infra/adapter/persistence/memory"
	"guidepedia/internal/infra/db"
	"guidepedia/internal/observability/logging"
	"guidepedia/internal/observability/metrics"
	"guidepedia/internal/observability/tracing"
)

const serviceName = "guidepedia-api"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (overrides CONFIG_FILE)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := auth.ValidateSecret(cfg.Auth.JWTSecret); err != nil {
		return fmt.Errorf("jwt secret: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init(serviceName, cfg.Version)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close(logger)

	services := app.NewServices(st.repos, nil)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter, err = newLimiter(cfg.RateLimit)
		if err != nil {
			return err
		}
		logger.Info("rate limiting enabled",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Int("trusted_proxies", len(cfg.RateLimit.TrustedProxies)))
	} else {
		logger.Warn("rate limiting is disabled")
	}

	secret := []byte(cfg.Auth.JWTSecret)
	if cfg.Auth.DevTokenUserID > 0 {
		token, err := auth.IssueToken(secret, cfg.Auth.DevTokenUserID, cfg.Auth.DevTokenTTL)
		if err != nil {
			return fmt.Errorf("issue dev token: %w", err)
		}
		logger.Info("development token issued",
			slog.Int64("user_id", cfg.Auth.DevTokenUserID),
			slog.Duration("ttl", cfg.Auth.DevTokenTTL),
			slog.String("token", token))
	}

	limits := hhttp.DefaultInputLimits()
	limits.MaxBodyBytes = cfg.HTTP.MaxBodyBytes

	deps := hhttp.Deps{
		Articles: services.Articles,
		Profiles: services.Profiles,
		Auth:     auth.New(secret),
		Limiter:  limiter,
		Logger:   logger,
		DB:       st.db,
		Version:  cfg.Version,
		Timeout:  cfg.HTTP.RequestTimeout,
		Limits:   limits,
	}
	if st.breaker != nil {
		deps.Breaker = st.breaker
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           hhttp.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version),
			slog.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	if limiter != nil {
		g.Go(func() error {
			limiter.RunCleanup(gctx, cfg.RateLimit.CleanupInterval, cfg.RateLimit.IdleTTL)
			return nil
		})
	}

	if st.db != nil {
		g.Go(func() error {
			reportDBStats(gctx, st.db, 15*time.Second)
			return nil
		})
	}

	return g.Wait()
}

type store struct {
	repos   app.Repositories
	db      *sql.DB
	breaker hhttp.Breaker
}

func (s *store) close(logger *slog.Logger) {
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*store, error) {
	if cfg.Store.Driver == config.DriverMemory {
		repos := app.MemoryRepositories(memory.NewStore())
		if err := app.Seed(ctx, repos, cfg.Seed); err != nil {
			return nil, err
		}
		logger.Warn("using in-memory store; data is lost on restart",
			slog.Int("seed_categories", len(cfg.Seed.Categories)),
			slog.Int("seed_users", len(cfg.Seed.Users)))
		return &store{repos: repos}, nil
	}

	database, err := db.Open(ctx, cfg.Store.DatabaseURL, db.ConnectionConfig{
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		MaxIdleConns:    cfg.Store.MaxIdleConns,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Store.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Store.Migrate {
		if err := db.MigrateUp(database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	repos, tx := app.PostgresRepositories(database)
	// Seeded categories are idempotent; users are only seeded on a fresh memory store.
	if err := app.Seed(ctx, repos, config.Seed{Categories: cfg.Seed.Categories}); err != nil {
		_ = database.Close()
		return nil, err
	}
	return &store{repos: repos, db: database, breaker: tx.Breaker()}, nil
}

func newLimiter(cfg config.RateLimitConfig) (*middleware.RateLimiter, error) {
	var extractor middleware.IPExtractor = middleware.RemoteAddrExtractor{}
	if len(cfg.TrustedProxies) > 0 {
		proxies, err := middleware.ParseTrustedProxies(strings.Join(cfg.TrustedProxies, ","))
		if err != nil {
			return nil, fmt.Errorf("trusted proxies: %w", err)
		}
		extractor = middleware.NewTrustedProxyExtractor(proxies)
	}
	return middleware.NewRateLimiter(cfg.RPS, cfg.Burst, extractor), nil
}

func reportDBStats(ctx context.Context, database *sql.DB, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := database.Stats()
			metrics.UpdateDBConnectionStats(s.InUse, s.Idle)
		}
	}
}
