package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"finhub/internal/core"
	applog "finhub/internal/log"
	"finhub/internal/sheets"
	"finhub/internal/storage"
)

// DashboardData is the full analysis output, written to dashboard_data.json
// and served by the API.
type DashboardData struct {
	Generated      time.Time             `json:"generated"`
	Snapshot       core.Snapshot         `json:"snapshot"`
	Trends         core.SpendingTrends   `json:"trends"`
	BudgetVsActual core.BudgetComparison `json:"budget_vs_actual"`
	Anomalies      core.AnomalyReport    `json:"anomalies"`
	Payoff         core.PayoffPlan       `json:"payoff"`
	EmergencyFund  core.EmergencyFund    `json:"emergency_fund"`
	HealthScore    core.HealthScore      `json:"health_score"`
	Goals          map[string]any        `json:"goals,omitempty"`
	Alerts         []Alert               `json:"alerts"`
	ImportedRows   int                   `json:"imported_rows"`
	DroppedRows    int                   `json:"dropped_rows"`
	ExcludedRows   int                   `json:"excluded_rows"`
}

// AnalysisService runs the full engine pass over the data directory.
type AnalysisService struct {
	store          *storage.Store
	budgetReader   sheets.BudgetReader
	lookbackMonths int
	logger         *applog.Logger
}

// NewAnalysisService creates the service. budgetReader may be nil, in which
// case the budget comes from budget.json.
func NewAnalysisService(store *storage.Store, budgetReader sheets.BudgetReader, lookbackMonths int, logger *applog.Logger) *AnalysisService {
	return &AnalysisService{
		store:          store,
		budgetReader:   budgetReader,
		lookbackMonths: lookbackMonths,
		logger:         logger.WithComponent("analysis"),
	}
}

// Analyze loads everything from the store and composes the dashboard. The
// snapshot and spending branches are independent and run concurrently; both
// complete before anything is composed from them.
func (s *AnalysisService) Analyze(ctx context.Context, asOf time.Time) (*DashboardData, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	var (
		cfg    core.AccountConfig
		snap   core.Snapshot
		goals  map[string]any
		parsed core.ParseResult
		agg    core.SpendingAggregate
		trends core.SpendingTrends
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		cfg, err = s.store.LoadAccountConfig(gctx)
		if err != nil {
			return fmt.Errorf("load account config: %w", err)
		}
		snap = core.CalculateSnapshot(cfg)
		if goals, err = s.store.LoadGoals(gctx); err != nil {
			return fmt.Errorf("load goals: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := s.store.LoadRawTransactions(gctx)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		parsed = core.Normalize(rows, core.NormalizeOptions{})
		agg = core.AggregateSpending(parsed.Transactions, s.lookbackMonths, asOf)
		trends = core.AnalyzeSpendingTrends(parsed.Transactions, asOf)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	budget, monthlyEarnings, err := s.loadBudget(ctx)
	if err != nil {
		return nil, err
	}

	currentMonth := core.MonthKey(asOf)
	actual := agg.CategoryForMonth(currentMonth)
	comparison := core.CompareBudget(budget, actual, 1, asOf)

	anomalies := core.DetectAnomalies(parsed.Transactions, trends.Trends, asOf)

	cards := core.CreditCardDebts(cfg)
	payoff := core.CalculatePayoffPlan(cards, nil)

	// Prefer observed spending for the expense base; fall back to the
	// configured recurring total when the export has no current-month data.
	monthlyExpenses := agg.MonthTotals[currentMonth]
	if monthlyExpenses <= 0 {
		monthlyExpenses = snap.MonthlyRecurring
	}

	monthlyIncome := snap.MonthlyIncome
	if monthlyIncome <= 0 {
		monthlyIncome = monthlyEarnings
	}

	fund := core.EvaluateEmergencyFund(snap.LiquidCash, monthlyExpenses)

	monthlySavings, employerMatch, hasSavings := core.SavingsProfile(cfg)
	health := core.ComposeHealthScore(core.HealthInputs{
		LiquidCash:          snap.LiquidCash,
		MonthlyExpenses:     monthlyExpenses,
		MonthlyIncome:       monthlyIncome,
		MonthlyDebtPayments: core.MonthlyDebtPayments(cfg),
		CreditCardDebt:      payoff.TotalBalance,
		MonthlySavings:      monthlySavings,
		EmployerMatch:       employerMatch,
		HasSavingsData:      hasSavings,
	}, comparison.Overages)

	data := &DashboardData{
		Generated:      asOf,
		Snapshot:       snap,
		Trends:         trends,
		BudgetVsActual: comparison,
		Anomalies:      anomalies,
		Payoff:         payoff,
		EmergencyFund:  fund,
		HealthScore:    health,
		Goals:          goals,
		ImportedRows:   len(parsed.Transactions),
		DroppedRows:    parsed.Dropped,
		ExcludedRows:   parsed.Excluded,
	}
	data.Alerts = generateAlerts(data)

	s.logger.InfoContext(ctx, "analysis complete",
		applog.FieldMonth, currentMonth,
		applog.FieldRows, data.ImportedRows,
		applog.FieldDropped, data.DroppedRows,
		applog.FieldExcluded, data.ExcludedRows,
		"grade", health.Grade,
		"alerts", len(data.Alerts))

	return data, nil
}

// loadBudget resolves the budget source: the configured reader when present,
// budget.json otherwise. Monthly earnings only come from the file.
func (s *AnalysisService) loadBudget(ctx context.Context) (core.BudgetMap, float64, error) {
	if s.budgetReader != nil {
		budget, err := s.budgetReader.ReadBudget(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("read budget: %w", err)
		}
		return budget, 0, nil
	}

	file, err := s.store.LoadBudget(ctx)
	if err != nil {
		return nil, 0, err
	}
	return file.Budget(), file.MonthlyIncome.Earnings, nil
}
