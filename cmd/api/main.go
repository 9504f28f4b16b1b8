// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/househunt/go-backend/internal/admin"
	"github.com/househunt/go-backend/internal/auth"
	"github.com/househunt/go-backend/internal/booking"
	"github.com/househunt/go-backend/internal/config"
	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/health"
	"github.com/househunt/go-backend/internal/media"
	"github.com/househunt/go-backend/internal/middleware"
	"github.com/househunt/go-backend/internal/property"
	"github.com/househunt/go-backend/internal/server"
	"github.com/househunt/go-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	migrate := flag.Bool("migrate", false, "apply database migrations before serving")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	if err := run(*configPath, *migrate); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string, migrate bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if migrate || cfg.Database.AutoMigrate {
		if err := core.Migrate(ctx, db.DB); err != nil {
			return err
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, property cache disabled", "error", err)
		redis = nil
	}
	if redis.Enabled() {
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	}

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}

	ingestor, err := media.NewIngestor(cfg.Upload)
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, tokens)
	authHandler := auth.NewHandler(authSvc)

	propertyRepo := property.NewRepository(db.DB)
	propertySvc := property.NewService(
		propertyRepo,
		ingestor,
		property.NewRedisListCache(redis, cfg.Cache.PropertyListTTL),
	)
	propertyHandler := property.NewHandler(propertySvc, ingestor.MaxBytes())

	bookingRepo := booking.NewRepository(db.DB)
	bookingSvc := booking.NewService(bookingRepo, propertySvc)
	bookingHandler := booking.NewHandler(bookingSvc)

	deps := []health.Dependency{{Name: "database", Checker: db}}
	if redis.Enabled() {
		deps = append(deps, health.Dependency{
			Name:     "redis",
			Checker:  redis,
			Optional: true,
		})
	}
	healthHandler := health.NewHandler(deps...)

	adminCfg := admin.HandlerConfig{
		DBStats:    db.Stats,
		DBPing:     db.Ping,
		Users:      userSvc,
		Properties: propertySvc,
		Bookings:   bookingSvc,
	}
	if redis.Enabled() {
		adminCfg.RedisStats = redis.PoolStats
		adminCfg.RedisPing = redis.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Handle(
		cfg.Upload.URLPrefix+"/*",
		media.FileServer(cfg.Upload.URLPrefix, cfg.Upload.Dir),
	)

	authenticator := middleware.Authenticator(tokens)

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		propertyHandler.RegisterRoutes(r, authenticator)
		bookingHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)

		r.Route("/owner", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireApprovedOwner)

			propertyHandler.RegisterOwnerRoutes(r)
			bookingHandler.RegisterOwnerRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireAdmin)

			userHandler.RegisterAdminRoutes(r)
			adminHandler.RegisterRoutes(r)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
