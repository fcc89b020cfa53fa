package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"moussamarbre.com/site-api/internal/api"
	"moussamarbre.com/site-api/internal/config"
	"moussamarbre.com/site-api/internal/core"
	"moussamarbre.com/site-api/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	zapConfig := zap.NewProductionConfig()
	if config.AppConfig.LogLevel == "DEBUG" {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if config.AppConfig.OpenRouterAPIKey == "" {
		logger.Warn("OPENROUTER_API_KEY is not set; /api/chat will return configuration errors")
	}

	// Initialize catalog store
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbStore.Close()

	// Initialize pipeline services
	contextService := core.NewContextService(dbStore, logger)
	llmService := core.NewLLMService(logger)
	chatService := core.NewChatService(contextService, llmService, logger)

	// Initialize API handler and router
	apiHandler := api.NewAPIHandler(chatService, dbStore, logger)
	router := api.NewRouter(apiHandler, logger)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // Completion calls can take a while
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		logger.Info("Starting server", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Could not listen", zap.String("addr", serverAddr), zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting gracefully")
}
