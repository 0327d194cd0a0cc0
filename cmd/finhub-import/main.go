package main

import (
	"context"
	"flag"
	"fmt"
	"os"
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

	var (
		rebuildNow = flag.Bool("now", false, "run the rebuild inline instead of publishing a message")
		pullBudget = flag.Bool("pull-budget", false, "refresh budget.json from the configured Google Sheet")
		archive    = flag.String("archive", "", "archive processed files under snapshots/<YYYY-MM> and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [export.csv]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Imports a Rocket Money export and triggers a dashboard rebuild.")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := applog.New(applog.Config{
		Component: applog.ComponentImport,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store := storage.NewStore(cfg.DataDir, logger)

	if *archive != "" {
		if err := store.ArchiveMonthly(ctx, *archive); err != nil {
			logger.Error("Archive failed", applog.FieldMonth, *archive, applog.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Archive complete", applog.FieldMonth, *archive)
		return
	}

	if *pullBudget {
		if err := refreshBudget(ctx, cfg, store, logger); err != nil {
			logger.Error("Budget refresh failed", applog.FieldError, err)
			os.Exit(1)
		}
	}

	imported := 0
	if flag.NArg() > 0 {
		src := flag.Arg(0)
		if err := store.ImportExport(ctx, src); err != nil {
			logger.Error("Import failed", applog.FieldFile, src, applog.FieldError, err)
			os.Exit(1)
		}
		rows, err := store.LoadRawTransactions(ctx)
		if err != nil {
			logger.Error("Imported file is not readable", applog.FieldError, err)
			os.Exit(1)
		}
		imported = len(rows)
		logger.Info("Export imported", applog.FieldFile, src, applog.FieldRows, imported)
	} else if !*pullBudget {
		flag.Usage()
		os.Exit(2)
	}

	if *rebuildNow {
		budgetReader, err := budgetReaderFor(ctx, cfg)
		if err != nil {
			logger.Error("Failed to initialize budget source", applog.FieldError, err)
			os.Exit(1)
		}
		analysis := services.NewAnalysisService(store, budgetReader, cfg.LookbackMonths, logger)
		processor := services.NewRebuildProcessor(analysis, store, services.DefaultRebuildProcessorConfig(), logger)
		if err := processor.Rebuild(ctx, "import"); err != nil {
			logger.Error("Rebuild failed", applog.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Rebuild complete", applog.FieldRows, imported)
		return
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	msg := amqp.NewRebuildRequest("import", imported)
	if err := client.PublishRebuild(ctx, msg); err != nil {
		logger.Error("Failed to publish rebuild request", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Rebuild request published", applog.FieldRows, imported)
}

// budgetReaderFor resolves the budget source for an inline rebuild; nil means
// budget.json.
func budgetReaderFor(ctx context.Context, cfg *config.Config) (ports.BudgetReader, error) {
	if cfg.BudgetSource != "sheets" {
		return nil, nil
	}
	return gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		BudgetSheet:     cfg.BudgetSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
}

// refreshBudget pulls the category budgets from the sheet and writes them to
// budget.json, preserving the earnings figure already on disk.
func refreshBudget(ctx context.Context, cfg *config.Config, store *storage.Store, logger *applog.Logger) error {
	if cfg.GoogleSpreadsheetID == "" {
		return fmt.Errorf("GOOGLE_SPREADSHEET_ID is required for -pull-budget")
	}
	cli, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		BudgetSheet:     cfg.BudgetSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		return err
	}
	budget, err := cli.ReadBudget(ctx)
	if err != nil {
		return err
	}

	current, err := store.LoadBudget(ctx)
	if err != nil {
		return err
	}
	current.CategoryBudgets = budget
	var total float64
	for _, v := range budget {
		total += v
	}
	current.Metadata.TotalSpendingBudget = total

	if err := store.SaveBudget(ctx, current); err != nil {
		return err
	}
	logger.Info("Budget refreshed from sheet", "categories", len(budget))
	return nil
}
