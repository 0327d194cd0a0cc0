package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"finhub/internal/core"
	ports "finhub/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	budgetSheet   string
}

// Ensure interface conformance
var _ ports.BudgetReader = (*Client)(nil)

// Options configures the Sheets client. CredentialsJSON and CredentialsFile
// are alternatives; when both are empty GOOGLE_APPLICATION_CREDENTIALS is
// tried.
type Options struct {
	SpreadsheetID   string
	BudgetSheet     string
	CredentialsJSON string
	CredentialsFile string
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	budgetSheet := strings.TrimSpace(opts.BudgetSheet)
	if budgetSheet == "" {
		budgetSheet = "Budget"
	}

	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		budgetSheet:   budgetSheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	credentialsFile := strings.TrimSpace(opts.CredentialsFile)
	if opts.CredentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case opts.CredentialsJSON != "":
		credentialsJSON = []byte(opts.CredentialsJSON)
	case credentialsFile != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// ReadBudget reads the budget sheet's category/amount columns.
func (c *Client) ReadBudget(ctx context.Context) (core.BudgetMap, error) {
	readRange := fmt.Sprintf("%s!A:B", c.budgetSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read budget range %s: %w", readRange, err)
	}

	budget, err := parseBudget(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("parse budget sheet %s: %w", c.budgetSheet, err)
	}

	slog.InfoContext(ctx, "Budget sheet loaded",
		"sheet", c.budgetSheet,
		"categories", len(budget))
	return budget, nil
}
