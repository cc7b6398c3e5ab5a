// Package main runs the blog service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jsamuelsen/blog-service/internal/adapters/http"
	"github.com/jsamuelsen/blog-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/blog-service/internal/adapters/mongodb"
	"github.com/jsamuelsen/blog-service/internal/app"
	"github.com/jsamuelsen/blog-service/internal/platform/config"
	"github.com/jsamuelsen/blog-service/internal/platform/logging"
	"github.com/jsamuelsen/blog-service/internal/platform/telemetry"
	"github.com/jsamuelsen/blog-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting blog service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	store, err := mongodb.Connect(ctx, &mongodb.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
		MaxPoolSize:    cfg.Mongo.MaxPoolSize,
		AppName:        cfg.App.Name,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warn("could not ensure indexes", slog.Any("error", err))
	}

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	authorRepo := mongodb.NewAuthorRepository(store.Database())
	postRepo := mongodb.NewPostRepository(store.Database())

	authorService := app.NewAuthorService(app.AuthorServiceConfig{
		Repository: authorRepo,
		Logger:     logger,
	})
	postService := app.NewPostService(app.PostServiceConfig{
		Posts:   postRepo,
		Authors: authorRepo,
		Logger:  logger,
	})

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, buildInfo),
		AuthorHandler: handlers.NewAuthorHandler(authorService),
		PostHandler:   handlers.NewPostHandler(postService),
		LoginHandler:  handlers.NewLoginHandler(authorService),
		Timeout:       cfg.Server.RequestTimeout,
	})

	return serve(ctx, logger, server, store, cfg.Server.ShutdownTimeout)
}

// serve runs the API until SIGINT or SIGTERM, then closes the store pool
// once the HTTP server has drained.
func serve(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	store *mongodb.Client,
	shutdownTimeout time.Duration,
) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := server.Run(sigCtx)
	if sigCtx.Err() != nil {
		logger.Info("received shutdown signal", slog.Duration("timeout", shutdownTimeout))
	}

	disconnectCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := errors.Join(serveErr, store.Disconnect(disconnectCtx)); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}
