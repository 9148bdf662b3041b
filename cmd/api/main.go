// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lalonstore/lalon-store-api/internal/admin"
	"github.com/lalonstore/lalon-store-api/internal/auth"
	"github.com/lalonstore/lalon-store-api/internal/banner"
	"github.com/lalonstore/lalon-store-api/internal/category"
	"github.com/lalonstore/lalon-store-api/internal/config"
	"github.com/lalonstore/lalon-store-api/internal/core"
	"github.com/lalonstore/lalon-store-api/internal/health"
	"github.com/lalonstore/lalon-store-api/internal/middleware"
	"github.com/lalonstore/lalon-store-api/internal/product"
	"github.com/lalonstore/lalon-store-api/internal/server"
	"github.com/lalonstore/lalon-store-api/internal/storage"
	"github.com/lalonstore/lalon-store-api/internal/upload"
	"github.com/lalonstore/lalon-store-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
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

	core.SetIncludeStacks(!cfg.IsProduction())

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"database", cfg.Mongo.Database,
		"max_pool_size", cfg.Mongo.MaxPoolSize,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	assets, err := storage.NewCloudinary(cfg.Cloudinary)
	if err != nil {
		return err
	}

	temp, err := storage.NewTempStore(cfg.Upload)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"access_token_expire", cfg.JWT.AccessTokenExpire,
	)

	userRepo := user.NewRepository(db)
	userSvc := user.NewService(userRepo, assets)
	userHandler := user.NewHandler(userSvc, temp)

	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, userRepo, tokens, redis)
	authHandler := auth.NewHandler(authSvc, cfg.JWT, cfg.IsProduction())

	categoryRepo := category.NewRepository(db)
	categorySvc := category.NewService(categoryRepo, assets)
	categoryHandler := category.NewHandler(categorySvc, temp)

	productRepo := product.NewRepository(db)
	productSvc := product.NewService(productRepo, categoryRepo, assets)
	productHandler := product.NewHandler(productSvc, temp)

	bannerRepo := banner.NewRepository(db)
	bannerSvc := banner.NewService(bannerRepo, assets)
	bannerHandler := banner.NewHandler(bannerSvc, temp)

	uploadSvc := upload.NewService(assets)
	uploadHandler := upload.NewHandler(uploadSvc, temp)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBSessions: db.SessionsInProgress,
		DBPing:     db.Ping,
		RedisStats: redis.PoolStats,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Logger:       logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(authSvc)
	adminOnly := middleware.RequireAdmin

	router.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r, authenticator, adminOnly)
		categoryHandler.RegisterRoutes(r, authenticator, adminOnly)
		productHandler.RegisterRoutes(r, authenticator, adminOnly)
		bannerHandler.RegisterRoutes(r, authenticator, adminOnly)
		uploadHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
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

	healthHandler.SetShutdown(true)

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

	if err := db.Close(shutdownCtx); err != nil {
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
