package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-creation-engine/internal/app"
	"github.com/KirkDiggler/dnd-creation-engine/internal/config"
	"github.com/KirkDiggler/dnd-creation-engine/internal/handlers/rest"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Server.LogLevel, cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	docs, err := app.NewDocuments(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	defer func() {
		if err := docs.Close(); err != nil {
			logger.Warn("Error closing Redis connection", zap.Error(err))
		}
	}()

	// The index is built lazily on first use when this fails
	if err := docs.Store.InitIndex(ctx); err != nil {
		logger.Warn("Initial index build failed", zap.Error(err))
	}

	provider := services.NewProvider(&services.ProviderConfig{
		Documents:          docs.Store,
		MaxTraversalSteps:  cfg.Engine.MaxTraversalSteps,
		LabelLocale:        cfg.Engine.LabelLocale,
		CatalogConcurrency: cfg.Engine.CatalogFetches,
		Logger:             logger,
	})

	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := rest.NewRouter(&rest.RouterConfig{
		Handler: rest.NewHandler(&rest.HandlerConfig{
			ServiceProvider: provider,
			Logger:          logger.Named("http"),
		}),
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server listen error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server forced to shutdown", zap.Error(err))
	}
}
