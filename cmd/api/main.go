// ================== cmd/api/main.go ==================
//
// @title Task Manager API
// @version 1.0
// @description A RESTful API for managing tasks and categories with GitHub login
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/xyz-asif/taskmanager/internal/config"
	"github.com/xyz-asif/taskmanager/internal/database"
	"github.com/xyz-asif/taskmanager/internal/pkg/logger"
	"github.com/xyz-asif/taskmanager/internal/pkg/metrics"
	"github.com/xyz-asif/taskmanager/internal/pkg/ratelimit"
	"github.com/xyz-asif/taskmanager/internal/routes"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger.SetupDefault(logger.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Production: cfg.IsProduction(),
	})

	db, err := database.Connect(context.Background(), database.Config{
		URI:     cfg.MongoURI,
		DBName:  cfg.MongoDB,
		MaxPool: cfg.MongoMaxPool,
		MinPool: cfg.MongoMinPool,
	})
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx); err != nil {
			slog.Error("failed to disconnect from MongoDB", slog.Any("error", err))
		}
	}()

	if err := db.EnsureIndexes(context.Background()); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	limiter := ratelimit.New(ratelimit.Config{
		PerMinute: cfg.AuthRateLimitPerMinute,
		Burst:     cfg.AuthRateLimitBurst,
	})
	defer limiter.Stop()

	router := routes.NewRouter(routes.Dependencies{
		Config:   cfg,
		DB:       db,
		Metrics:  metrics.NewCollector(reg),
		Gatherer: reg,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server exited")
	return nil
}
