package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"socialgraph/backend/internal/api"
	"socialgraph/backend/internal/graph"
	"socialgraph/backend/internal/metrics"
	"socialgraph/backend/internal/network"
	"socialgraph/backend/pkg/config"
	"socialgraph/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...")

	socialGraph := network.New(
		logger.Get(),
		network.WithRecorder(metrics.NewRecorder(prometheus.DefaultRegisterer)),
		network.WithMaxDepth(cfg.MaxSearchDepth),
	)

	// Neo4j projection is optional; without it /api/projection answers 503
	var projector api.Projector
	if cfg.ProjectionEnabled {
		repo, err := connectProjection(cfg)
		if err != nil {
			log.Fatal("Failed to set up Neo4j projection", zap.Error(err))
		}
		defer repo.Close()
		projector = repo
		log.Info("Neo4j projection enabled", zap.String("uri", cfg.Neo4jURI))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewHandler(socialGraph, projector, logger.Named("api")), prometheus.DefaultGatherer)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// connectProjection opens Neo4j and makes sure the name constraint exists
func connectProjection(cfg *config.Config) (*graph.Repository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return nil, err
	}

	repo := graph.NewRepository(driver, cfg.ProjectionWorkers)
	if err := repo.EnsureConstraints(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}
