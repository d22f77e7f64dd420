// FareLens | 2026
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
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/farelens/backend/internal/admin"
	"github.com/farelens/backend/internal/alert"
	"github.com/farelens/backend/internal/auth"
	"github.com/farelens/backend/internal/config"
	"github.com/farelens/backend/internal/core"
	"github.com/farelens/backend/internal/deal"
	"github.com/farelens/backend/internal/health"
	"github.com/farelens/backend/internal/middleware"
	"github.com/farelens/backend/internal/provider"
	"github.com/farelens/backend/internal/server"
	"github.com/farelens/backend/internal/user"
	"github.com/farelens/backend/internal/watchlist"
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

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"backend", cfg.Provider.Backend,
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

	// The memory backend needs no database; Redis is optional everywhere
	// (rate limiting falls back to a per-process limiter without it).
	var db *core.Database
	if cfg.Provider.Backend == config.BackendPostgres {
		db, err = core.NewDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		logger.Info("database connected",
			"max_open_conns", cfg.Database.MaxOpenConns,
			"max_idle_conns", cfg.Database.MaxIdleConns,
		)
	}

	var rdb *core.Redis
	if cfg.Redis.URL != "" {
		rdb, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}

	store, err := provider.New(cfg.Provider, sqlxPool(db))
	if err != nil {
		return err
	}

	dealHandler := deal.NewHandler(store)
	watchlistHandler := watchlist.NewHandler(store)
	alertHandler := alert.NewHandler(store)
	userHandler := user.NewHandler(store)
	authHandler := auth.NewHandler(redisClient(rdb), cfg.RateLimit)

	healthHandler := health.NewHandler(dbChecker(db), redisChecker(rdb))

	adminHandler := admin.NewHandler(adminConfig(cfg, db, rdb))

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redisClient(rdb), middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(jwtManager)
	optionalAuth := middleware.OptionalAuth(jwtManager)
	serviceOnly := middleware.RequireServiceKey(cfg.Admin.ServiceKey)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		dealHandler.RegisterRoutes(r, optionalAuth, serviceOnly)
		watchlistHandler.RegisterRoutes(r, authenticator)
		alertHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, serviceOnly)
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

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

func redisClient(r *core.Redis) *goredis.Client {
	if r == nil {
		return nil
	}
	return r.Client
}

func sqlxPool(db *core.Database) *sqlx.DB {
	if db == nil {
		return nil
	}
	return db.DB
}

// The nil checks below avoid handing a typed-nil pointer to an interface
// field, which would defeat the handlers' own nil checks.

func dbChecker(db *core.Database) health.Checker {
	if db == nil {
		return nil
	}
	return db
}

func redisChecker(r *core.Redis) health.Checker {
	if r == nil {
		return nil
	}
	return r
}

func adminConfig(
	cfg *config.Config,
	db *core.Database,
	rdb *core.Redis,
) admin.HandlerConfig {
	handlerCfg := admin.HandlerConfig{Backend: cfg.Provider.Backend}
	if db != nil {
		handlerCfg.DBStats = db.Stats
		handlerCfg.DBPing = db.Ping
	}
	if rdb != nil {
		handlerCfg.RedisStats = rdb.PoolStats
		handlerCfg.RedisPing = rdb.Ping
	}
	return handlerCfg
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
