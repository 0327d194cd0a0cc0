package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finhub/internal/amqp"
	"finhub/internal/config"
	applog "finhub/internal/log"
	"finhub/internal/services"
	ports "finhub/internal/sheets"
	gsheet "finhub/internal/sheets/google"
	"finhub/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting finhub-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	store := storage.NewStore(cfg.DataDir, logger)

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
		logger.Info("Google Sheets budget source initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	analysis := services.NewAnalysisService(store, budgetReader, cfg.LookbackMonths, logger)
	processor := services.NewRebuildProcessor(analysis, store, services.RebuildProcessorConfig{
		Interval:             cfg.RebuildInterval,
		ArchiveOnMonthChange: true,
	}, logger)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The scheduled loop also runs a rebuild immediately on startup, so the
	// dashboard is fresh before the first message arrives.
	if err := processor.Start(ctx); err != nil {
		logger.Error("Failed to start rebuild processor", applog.FieldError, err)
		os.Exit(1)
	}

	go func() {
		if err := amqpClient.ConsumeRebuilds(ctx, processor.HandleRebuildMessage); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", applog.FieldError, err)
			}
			cancel()
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down worker...")
	if err := processor.Stop(shutdownCtx); err != nil {
		logger.Error("Processor shutdown error", applog.FieldError, err)
	}
	cancel()
	logger.Info("Worker shutdown complete")
}
