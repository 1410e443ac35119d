package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourlovestory/story-gateway/internal/config"
	"github.com/yourlovestory/story-gateway/internal/handlers"
	"github.com/yourlovestory/story-gateway/internal/logger"
	"github.com/yourlovestory/story-gateway/internal/middleware"
	"github.com/yourlovestory/story-gateway/internal/services"
)

func main() {
	// A missing .env file is fine; the environment itself takes precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Story Gateway API",
		"port", cfg.Port,
		"environment", cfg.Environment)

	creds := config.LoadCredentials(os.Environ())
	if len(creds) == 0 {
		log.Warn("No provider credentials configured, only the keyless provider is available")
	} else {
		log.Info("Provider credentials loaded", "count", len(creds))
	}

	providers := []services.Provider{
		services.NewGroqProvider(cfg.ProviderTimeout),
		services.NewGeminiProvider(cfg.ProviderTimeout),
		services.NewPollinationsProvider(cfg.ProviderTimeout),
	}
	orchestrator := services.NewOrchestrator(providers, creds, log, cfg.FallbackAttempts, cfg.RetryDelay)

	var store services.ArchiveStore = services.NewRedisStore(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	generateHandler := handlers.NewGenerateHandler(orchestrator, log)
	mux.Handle("/generate", generateHandler)

	syncHandler := handlers.NewSyncHandler(store, cfg.TokenIssuer, log)
	mux.Handle("/sync", syncHandler)

	handler := middleware.CORS(middleware.Logger(log, mux))
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
