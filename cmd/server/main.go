package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spence115/MockStocks/internal/auth"
	"github.com/Spence115/MockStocks/internal/config"
	"github.com/Spence115/MockStocks/internal/database"
	"github.com/Spence115/MockStocks/internal/engine"
	"github.com/Spence115/MockStocks/internal/logger"
	"github.com/Spence115/MockStocks/internal/quote"
	"github.com/Spence115/MockStocks/internal/server"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	startingCash, err := decimal.NewFromString(cfg.Trading.StartingCash)
	if err != nil {
		log.Fatal("Invalid starting cash amount", zap.String("value", cfg.Trading.StartingCash), zap.Error(err))
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")

	// Initialize quote provider client
	quotes := quote.NewClient(&cfg.Quote, log.Named("quote"))

	// Wire core services
	tradingEngine := engine.NewEngine(log.Named("engine"), db, quotes)
	authService := auth.NewService(log.Named("auth"), db, &cfg.Auth, startingCash)

	srv := server.New(log, tradingEngine, authService)

	// Setup graceful shutdown
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Listen(cfg.Server.Port); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}

	log.Info("Server has been shut down.")
}
