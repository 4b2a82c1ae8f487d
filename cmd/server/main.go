package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tmuriuki/legal-document-analyzer/internal/config"
	"github.com/tmuriuki/legal-document-analyzer/internal/metrics"
	"github.com/tmuriuki/legal-document-analyzer/internal/repository"
	"github.com/tmuriuki/legal-document-analyzer/internal/router"
	"github.com/tmuriuki/legal-document-analyzer/internal/services"
	"github.com/tmuriuki/legal-document-analyzer/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Process-scoped document store; cleared on restart
	docRepo := repository.NewMemoryRepository()
	docService := services.NewService(docRepo, cfg, logger)

	// Setup HTTP router
	serverMetrics := metrics.NewHTTPServerMetrics()
	handler := router.NewRouter(docService, logger, serverMetrics, cfg.MaxFileSize)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port,
			"storage_backend", cfg.StorageBackend,
			"extractor_provider", cfg.ExtractorProvider,
			"analyzer_provider", cfg.AnalyzerProvider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
