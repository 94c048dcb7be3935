package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"specshare/internal/cache"
	"specshare/internal/config"
	"specshare/internal/database"
	"specshare/internal/database/migration"
	handlers "specshare/internal/http/handler"
	"specshare/internal/http/middleware"
	"specshare/internal/logger"
	"specshare/internal/otel"
	"specshare/internal/repository"
	"specshare/internal/repository/cached"
	"specshare/internal/repository/sqlstore"
	"specshare/internal/service"
	"specshare/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Spec Share API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("tracing_init_failed", logger.Err(err))
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("database_connect_failed", logger.String("driver", cfg.Database.Driver), logger.Err(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db.DB, cfg.Database.Driver, log); err != nil {
		log.Fatal("database_migration_failed", logger.Err(err))
	}

	var repo repository.SpecRepository = sqlstore.NewSpecStore(db)
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("redis_connect_failed", logger.String("addr", cfg.Redis.Addr), logger.Err(err))
		}
		defer client.Close()
		ttl := time.Duration(cfg.Redis.TTLSec) * time.Second
		repo = cached.NewSpecRepository(repo, cache.NewRedisCache(client, ttl), log)
		log.Info("spec_cache_enabled", logger.String("addr", cfg.Redis.Addr), logger.Duration("ttl", ttl))
	}

	// The archive mirror is optional; a nil store disables it.
	var archive storage.Storage
	if cfg.MinIO.Endpoint != "" {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal("object_storage_init_failed", logger.String("endpoint", cfg.MinIO.Endpoint), logger.Err(err))
		}
		log.Info("spec_archive_enabled", logger.String("bucket", cfg.MinIO.Bucket))
	}

	specSvc := service.NewSpecService(repo, archive, log)

	app := fiber.New(handlers.NewConfig(log, cfg.BodyLimit))

	// RequestID first so every later middleware and log line can read it.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))

	routes := handlers.RouteConfig{
		Specs:     specSvc,
		DB:        db,
		Log:       log,
		PublicURL: cfg.PublicURL,
		Swagger:   true,
	}
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		prom, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			log.Fatal("metrics_init_failed", logger.Err(err))
		}
		app.Use(prom.Handler())
		routes.Metrics = adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	app.Use(middleware.CORS())
	handlers.RegisterRoutes(app, routes)

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server_listening", logger.String("addr", addr), logger.String("db_driver", cfg.Database.Driver))
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("server_failed", logger.Err(err))
		}
	case <-ctx.Done():
		log.Info("server_shutting_down")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", logger.Err(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("tracing_shutdown_failed", logger.Err(err))
	}
}
