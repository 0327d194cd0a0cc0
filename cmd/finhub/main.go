package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finhub/internal/config"
	apphttp "finhub/internal/http"
	applog "finhub/internal/log"
	"finhub/internal/services"
	ports "finhub/internal/sheets"
	gsheet "finhub/internal/sheets/google"
	"finhub/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	store := storage.NewStore(cfg.DataDir, logger)

	// Choose budget source (default: budget.json in the data directory).
	var budgetReader ports.BudgetReader
	if cfg.BudgetSource == "sheets" {
		cli, err := gsheet.New(context.Background(), gsheet.Options{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			BudgetSheet:     cfg.BudgetSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		budgetReader = cli
		logger.Info("Initialized Google Sheets budget source",
			"spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Using file budget source", "data_dir", cfg.DataDir)
	}

	analysis := services.NewAnalysisService(store, budgetReader, cfg.LookbackMonths, logger)
	processor := services.NewRebuildProcessor(analysis, store, services.RebuildProcessorConfig{
		Interval:             cfg.RebuildInterval,
		ArchiveOnMonthChange: true,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := processor.Start(ctx); err != nil {
		logger.Error("Failed to start rebuild processor", applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, processor, logger)

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		if err := processor.Stop(shutdownCtx); err != nil {
			logger.Error("Processor shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting finhub server", "port", cfg.Port, "data_dir", cfg.DataDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
