package core

import (
	"errors"
	"math"
	"time"
)

type (
	// Transaction is one immutable ledger row. Amount follows the Rocket Money
	// export convention: positive values are outflows (expenses), negative
	// values are inflows (refunds, income). Ingestion is responsible for
	// delivering rows in this convention.
	Transaction struct {
		Date        time.Time `json:"date"`
		Name        string    `json:"name"`
		Amount      float64   `json:"amount"`
		Category    string    `json:"category"`
		Account     string    `json:"account"`
		Description string    `json:"description"`
	}

	// RawRow is an already-parsed tabular row keyed by header name. Key casing
	// and exact header spelling vary between export versions.
	RawRow map[string]string

	// AccountConfig is the already-parsed financial_config.json document.
	// Shape per section: group name -> {item name -> {balance|amount, metadata}},
	// with a flat {item name -> {balance|amount}} variant tolerated for
	// backward compatibility.
	AccountConfig map[string]any

	// BudgetMap maps a spending category to its monthly budgeted amount.
	BudgetMap map[string]float64
)

var (
	// ErrInvalidConfig signals a structurally invalid config document: not an
	// object at all, or a section that cannot carry any sensible default. Data
	// quality quirks (missing sections, odd leaf shapes) never raise this.
	ErrInvalidConfig = errors.New("invalid_config")
)

// ParseAccountConfig checks that a decoded JSON document is an object and
// returns it as an AccountConfig. Anything else is a contract violation by
// the caller's ingestion layer.
func ParseAccountConfig(doc any) (AccountConfig, error) {
	if doc == nil {
		return AccountConfig{}, nil
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrInvalidConfig
	}
	return AccountConfig(m), nil
}

// MonthKey truncates a date to its YYYY-MM key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// monthsBetween returns the whole calendar-month distance from t to asOf.
// Same month is 0, the immediately preceding month is 1.
func monthsBetween(t, asOf time.Time) int {
	return (asOf.Year()-t.Year())*12 + int(asOf.Month()) - int(t.Month())
}

// round2 matches the two-decimal rounding applied to every dollar figure in
// the emitted data structures.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
