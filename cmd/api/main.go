package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
	"github.com/BruksfildServices01/showroom-scheduler/internal/auth"
	"github.com/BruksfildServices01/showroom-scheduler/internal/clock"
	"github.com/BruksfildServices01/showroom-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/showroom-scheduler/internal/db"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/showroom-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/showroom-scheduler/internal/metrics"
	"github.com/BruksfildServices01/showroom-scheduler/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	schedule, err := cfg.BusinessSchedule()
	if err != nil {
		return err
	}

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			logger.Warn("db close failed", "error", err)
		}
	}()

	var repo domain.Repository = infraRepo.NewAppointmentGormRepository(db, cfg.DB.StorageTimeout)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.StorageTimeout)
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			// the cache is optional; keep serving from Postgres
			logger.Warn("redis unavailable, booked-slot cache disabled", "addr", cfg.Redis.Addr, "error", err)
			redisClient = nil
		} else {
			repo = cache.NewRepository(repo, cache.NewRedisStore(redisClient), schedule, cfg.Redis.CacheTTL, logger)
			logger.Info("booked-slot cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	// ======================================================
	// AUDIT / METRICS / AUTH
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	var (
		reg *prometheus.Registry
		m   *metrics.Metrics
	)
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		m = metrics.New(reg)
	}

	verifier := auth.WithTimeout(
		auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience),
		cfg.Auth.Timeout,
	)
	admin := auth.NewAdminCredentials(cfg.Admin.User, cfg.Admin.PasswordHash)
	if !admin.Enabled() {
		logger.Warn("ADMIN_PASSWORD_HASH not set, admin routes will reject every request")
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, caller credentials cannot be verified")
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Schedule:  schedule,
		Repo:      repo,
		Audit:     auditDispatcher,
		AuditLogs: auditLogger,
		Pinger:    dbpkg.NewPinger(db),
		Verifier:  verifier,
		Admin:     admin,
		Metrics:   m,
		Registry:  reg,
		Clock:     clock.NewRealClock(),
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("server running",
		"addr", cfg.Addr(),
		"env", cfg.App.Env,
		"timezone", schedule.TimezoneName(),
		"auth_required", cfg.AuthRequired(),
	)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown timed out", "error", err)
	}

	auditDispatcher.Close()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close failed", "error", err)
		}
	}

	logger.Info("server stopped")
	return nil
}
