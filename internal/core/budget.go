package core

import (
	"sort"
	"time"
)

// CategoryComparison is one category's budget-vs-actual line.
type CategoryComparison struct {
	Budgeted   float64 `json:"budgeted"`
	Actual     float64 `json:"actual"`
	Remaining  float64 `json:"remaining"`
	Percent    float64 `json:"percent"`
	OverBudget bool    `json:"over_budget"`
}

// Overage is one over-budget category, ranked by overage size.
type Overage struct {
	Category string  `json:"category"`
	Budgeted float64 `json:"budgeted"`
	Actual   float64 `json:"actual"`
	Overage  float64 `json:"overage"`
}

// BudgetComparison compares a period's spending against the scaled budget.
type BudgetComparison struct {
	Categories     map[string]CategoryComparison `json:"categories"`
	Overages       []Overage                     `json:"over_budget_items"`
	TotalBudgeted  float64                       `json:"total_budgeted"`
	TotalSpent     float64                       `json:"total_spent"`
	TotalRemaining float64                       `json:"total_remaining"`
	DaysElapsed    int                           `json:"days_elapsed"`
	DaysRemaining  int                           `json:"days_remaining"`
}

// CompareBudget walks the union of budgeted and observed categories. Budgets
// are scaled by the months multiplier; spend in an unbudgeted category shows
// up against a zero budget with percent pinned to 0 (never a division error).
func CompareBudget(budget BudgetMap, actual map[string]float64, months int, asOf time.Time) BudgetComparison {
	if months < 1 {
		months = 1
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	categories := make(map[string]CategoryComparison, len(budget)+len(actual))
	names := make(map[string]bool, len(budget)+len(actual))
	for c := range budget {
		names[c] = true
	}
	for c := range actual {
		names[c] = true
	}

	var overages []Overage
	var totalBudgeted, totalSpent float64

	for name := range names {
		budgeted := budget[name] * float64(months)
		spent := actual[name]
		remaining := budgeted - spent

		percent := 0.0
		if budgeted > 0 {
			percent = spent / budgeted * 100
		}

		cmp := CategoryComparison{
			Budgeted:   round2(budgeted),
			Actual:     round2(spent),
			Remaining:  round2(remaining),
			Percent:    round2(percent),
			OverBudget: remaining < 0,
		}
		categories[name] = cmp
		totalBudgeted += budgeted
		totalSpent += spent

		if cmp.OverBudget {
			overages = append(overages, Overage{
				Category: name,
				Budgeted: cmp.Budgeted,
				Actual:   cmp.Actual,
				Overage:  round2(spent - budgeted),
			})
		}
	}

	sort.SliceStable(overages, func(i, j int) bool { return overages[i].Overage > overages[j].Overage })

	firstOfNext := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location()).AddDate(0, 1, 0)
	lastDay := firstOfNext.AddDate(0, 0, -1)

	return BudgetComparison{
		Categories:     categories,
		Overages:       overages,
		TotalBudgeted:  round2(totalBudgeted),
		TotalSpent:     round2(totalSpent),
		TotalRemaining: round2(totalBudgeted - totalSpent),
		DaysElapsed:    asOf.Day(),
		DaysRemaining:  lastDay.Day() - asOf.Day(),
	}
}
