package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iconidentify/xresolve/internal/api"
	"github.com/iconidentify/xresolve/internal/api/handler"
	"github.com/iconidentify/xresolve/internal/config"
	"github.com/iconidentify/xresolve/internal/repository"
	"github.com/iconidentify/xresolve/internal/service"
	"github.com/iconidentify/xresolve/internal/worker"
	"github.com/iconidentify/xresolve/pkg/twitter"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("xresolve %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting xresolve",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize dependencies
	jobRepo := repository.NewInMemoryJobRepository()
	historyRepo, err := repository.NewSQLiteHistoryRepository(cfg.History.Path)
	if err != nil {
		logger.Error("failed to open history database", "error", err, "path", cfg.History.Path)
		os.Exit(1)
	}
	defer historyRepo.Close()

	client := twitter.NewClient(cfg.Resolver)

	// Initialize service
	resolverSvc := service.NewResolverService(
		client,
		jobRepo,
		historyRepo,
		cfg.Worker,
		logger,
	)

	// Initialize handlers
	resolveHandler := handler.NewResolveHandler(resolverSvc, logger)
	healthHandler := handler.NewHealthHandler(jobRepo)

	// Setup router
	router := api.NewRouter(resolveHandler, healthHandler, logger, cfg.Server.APIKey)

	// Initialize worker pool
	pool := worker.NewPool(
		worker.Config{
			Workers:      cfg.Worker.Count,
			PollInterval: cfg.Worker.PollInterval,
		},
		jobRepo,
		resolverSvc,
		logger,
	)

	// Start worker pool
	pool.Start()

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop accepting new requests
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Stop workers (allow in-flight jobs to complete)
	if err := pool.Stop(25 * time.Second); err != nil {
		logger.Error("worker pool shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
