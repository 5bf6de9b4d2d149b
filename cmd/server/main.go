package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/tutoring-scheduler/internal/api"
	"github.com/dom/tutoring-scheduler/internal/cache"
	"github.com/dom/tutoring-scheduler/internal/config"
	"github.com/dom/tutoring-scheduler/internal/repository/postgres"
	"github.com/dom/tutoring-scheduler/internal/service"
	"github.com/dom/tutoring-scheduler/internal/telemetry"
	"gorm.io/gorm/logger"
)

const serviceName = "tutoring-scheduler"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := telemetry.SetupLogger(os.Stdout, serviceName, cfg.LogLevel)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize tracing
	shutdownTracing, err := telemetry.InitTracerProvider(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	// Initialize database
	gormLevel := logger.Warn
	if cfg.IsDevelopment() {
		gormLevel = logger.Info
	}
	db, err := postgres.NewConnection(cfg.DatabaseURL, gormLevel)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories and cache
	repos := postgres.NewRepositories(db)
	tutorCache := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	defer tutorCache.Close()

	// Initialize services
	services := service.NewServices(repos, tutorCache, cfg)

	// Initialize router
	router := api.NewRouter(ctx, services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("failed to flush traces", "error", err)
	}

	log.Info("server stopped")
}
