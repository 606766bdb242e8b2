package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if cfg.MetricsEnabled {
		metrics.Register()
	}

	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogger, logger)
	defer dispatcher.Close()

	limiter, closeLimiter := newLimiter(ctx, cfg, logger)
	defer closeLimiter()

	var avatarStore media.Store
	if cfg.AvatarStorageEnabled() {
		avatarStore = media.NewS3Store(cfg)
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("avatar storage enabled")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Log:         logger,
		Audit:       dispatcher,
		AuditLogger: auditLogger,
		Limiter:     limiter,
		Avatar:      avatarStore,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newLimiter uses Redis when REDIS_URL is set and reachable, memory otherwise.
func newLimiter(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (ratelimit.Limiter, func()) {
	if cfg.BookingRateLimit == 0 {
		return nil, func() {}
	}

	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err == nil {
			logger.Info().Msg("booking rate limit backed by redis")
			return ratelimit.NewRedisLimiter(client, "salon:reservas", cfg.BookingRateLimit, cfg.BookingRateWindow),
				func() { _ = client.Close() }
		}
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory rate limit")
	}

	return ratelimit.NewMemoryLimiter(cfg.BookingRateLimit, cfg.BookingRateWindow), func() {}
}
