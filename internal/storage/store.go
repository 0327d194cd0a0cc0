package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"finhub/internal/core"
	applog "finhub/internal/log"
)

// File names under dataDir/processed.
const (
	configFile    = "financial_config.json"
	budgetFile    = "budget.json"
	goalsFile     = "financial_goals.json"
	dashboardFile = "dashboard_data.json"
)

// transactionsFile is the Rocket Money export under dataDir/exports.
const transactionsFile = "AllTransactions.csv"

// Store reads and writes the flat-file data directory:
//
//	processed/  financial_config.json, budget.json, financial_goals.json, dashboard_data.json
//	exports/    AllTransactions.csv
//	reports/    rendered Markdown reports
//	snapshots/  YYYY-MM/ archived copies of processed files
type Store struct {
	dataDir string
	logger  *applog.Logger
}

func NewStore(dataDir string, logger *applog.Logger) *Store {
	return &Store{
		dataDir: dataDir,
		logger:  logger.WithComponent(applog.ComponentStorage),
	}
}

func (s *Store) processedPath(name string) string {
	return filepath.Join(s.dataDir, "processed", name)
}

// TransactionsPath is where the import CLI drops the Rocket Money export.
func (s *Store) TransactionsPath() string {
	return filepath.Join(s.dataDir, "exports", transactionsFile)
}

// BudgetFile mirrors budget.json: per-category monthly budgets plus the
// metadata the budget importer writes alongside them.
type BudgetFile struct {
	CategoryBudgets map[string]float64 `json:"category_budgets"`
	Metadata        struct {
		TotalSpendingBudget float64 `json:"total_spending_budget"`
	} `json:"metadata"`
	MonthlyIncome struct {
		Earnings float64 `json:"earnings"`
	} `json:"monthly_income"`
}

// Budget returns the per-category map in the engine's type.
func (b *BudgetFile) Budget() core.BudgetMap {
	m := make(core.BudgetMap, len(b.CategoryBudgets))
	for k, v := range b.CategoryBudgets {
		m[k] = v
	}
	return m
}

// LoadAccountConfig reads financial_config.json. A missing file is an empty
// config, not an error; the dashboard degrades to zeros.
func (s *Store) LoadAccountConfig(ctx context.Context) (core.AccountConfig, error) {
	path := s.processedPath(configFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "account config missing, using empty config", applog.FieldFile, path)
		return core.AccountConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read account config %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse account config %s: %w", path, err)
	}
	cfg, err := core.ParseAccountConfig(doc)
	if err != nil {
		return nil, fmt.Errorf("account config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadBudget reads budget.json. A missing file yields an empty budget.
func (s *Store) LoadBudget(ctx context.Context) (*BudgetFile, error) {
	path := s.processedPath(budgetFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "budget missing, using empty budget", applog.FieldFile, path)
		return &BudgetFile{CategoryBudgets: map[string]float64{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read budget %s: %w", path, err)
	}

	var b BudgetFile
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse budget %s: %w", path, err)
	}
	if b.CategoryBudgets == nil {
		b.CategoryBudgets = map[string]float64{}
	}
	return &b, nil
}

// LoadGoals reads financial_goals.json as a free-form document.
func (s *Store) LoadGoals(ctx context.Context) (map[string]any, error) {
	path := s.processedPath(goalsFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read goals %s: %w", path, err)
	}

	var goals map[string]any
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("parse goals %s: %w", path, err)
	}
	return goals, nil
}

// LoadRawTransactions reads the Rocket Money export into header-keyed rows.
// A missing export yields no rows; the engine handles the empty case.
func (s *Store) LoadRawTransactions(ctx context.Context) ([]core.RawRow, error) {
	path := s.TransactionsPath()
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "transactions export missing", applog.FieldFile, path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open transactions export %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rocket Money exports occasionally carry ragged rows.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header from %s: %w", path, err)
	}

	var rows []core.RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record from %s: %w", path, err)
		}

		row := make(core.RawRow, len(header))
		for i, key := range header {
			if i < len(record) {
				row[key] = record[i]
			}
		}
		rows = append(rows, row)
	}

	s.logger.InfoContext(ctx, "transactions export loaded", applog.FieldFile, path, applog.FieldRows, len(rows))
	return rows, nil
}

// SaveDashboardData writes dashboard_data.json atomically.
func (s *Store) SaveDashboardData(ctx context.Context, data any) error {
	path := s.processedPath(dashboardFile)
	if err := writeJSON(path, data); err != nil {
		return fmt.Errorf("save dashboard data: %w", err)
	}
	s.logger.InfoContext(ctx, "dashboard data saved", applog.FieldFile, path)
	return nil
}

// SaveReport writes one rendered report under reports/.
func (s *Store) SaveReport(ctx context.Context, name string, content []byte) error {
	path := filepath.Join(s.dataDir, "reports", name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("save report %s: %w", name, err)
	}
	s.logger.InfoContext(ctx, "report saved", applog.FieldFile, path)
	return nil
}

// ImportExport copies a Rocket Money export file into exports/, replacing any
// previous one.
func (s *Store) ImportExport(ctx context.Context, srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open export %s: %w", srcPath, err)
	}
	defer src.Close()

	dstPath := s.TransactionsPath()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("create exports directory: %w", err)
	}
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create export %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy export: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}

	s.logger.InfoContext(ctx, "transactions export imported", applog.FieldFile, dstPath)
	return nil
}

// SaveBudget writes budget.json, used when the budget comes from a sheet pull.
func (s *Store) SaveBudget(ctx context.Context, b *BudgetFile) error {
	path := s.processedPath(budgetFile)
	if err := writeJSON(path, b); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	s.logger.InfoContext(ctx, "budget saved", applog.FieldFile, path)
	return nil
}

// ArchiveMonthly copies the processed files into snapshots/<month>/, where
// month is a "2006-01" key. Files that do not exist yet are skipped.
func (s *Store) ArchiveMonthly(ctx context.Context, month string) error {
	dstDir := filepath.Join(s.dataDir, "snapshots", month)
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory %s: %w", dstDir, err)
	}

	archived := 0
	for _, name := range []string{configFile, budgetFile, goalsFile, dashboardFile} {
		src := s.processedPath(name)
		data, err := os.ReadFile(src)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s for archive: %w", src, err)
		}
		if err := os.WriteFile(filepath.Join(dstDir, name), data, 0644); err != nil {
			return fmt.Errorf("archive %s: %w", name, err)
		}
		archived++
	}

	s.logger.InfoContext(ctx, "monthly snapshot archived",
		applog.FieldMonth, month,
		applog.FieldOperation, applog.OpArchive,
		"files", archived)
	return nil
}

// writeJSON writes via a temp file and rename so readers never see a partial
// document.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
