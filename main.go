// Package main is the entry point for the walletfy backend server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/walletfy/walletfy-backend/internal/api"
	"gitlab.com/walletfy/walletfy-backend/internal/config"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/gemini"
	"gitlab.com/walletfy/walletfy-backend/internal/logger"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
	"gitlab.com/walletfy/walletfy-backend/internal/rules"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("walletfy-backend %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Log.Info().Msg("Database initialized successfully")

	if len(os.Args) > 2 && os.Args[1] == "import-rules" {
		importRules(ctx, pool, os.Args[2])
		return
	}

	var assistant *gemini.Client
	if cfg.GeminiAPIKey != "" {
		assistant, err = gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
	} else {
		logger.Log.Warn().Msg("GEMINI_API_KEY not set, assistant endpoint disabled")
	}

	server := api.New(cfg, pool, assistant)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error().Err(err).Msg("Graceful shutdown failed")
		}
		cancel()
	}()

	logger.Log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting HTTP server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatal().Err(err).Msg("HTTP server failed")
	}
}

// importRules loads recommendation rules from a CSV file and exits.
func importRules(ctx context.Context, db database.PGXDB, path string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open rules file")
	}
	defer f.Close()

	repo := repository.NewRecommendationRepository(db)
	result, err := rules.ImportCSV(ctx, repo, f)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Rules import failed")
	}
	fmt.Printf("imported %d rules (%d rows skipped)\n", result.Imported, result.Skipped)
}
