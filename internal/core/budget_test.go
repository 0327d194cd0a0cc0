package core

import (
	"testing"
	"time"
)

func TestCompareBudget_ZeroBudgetGuard(t *testing.T) {
	cmp := CompareBudget(BudgetMap{}, map[string]float64{"Hobbies": 50}, 1, day(2025, 8, 15))

	c, ok := cmp.Categories["Hobbies"]
	if !ok {
		t.Fatal("unbudgeted category should surface automatically")
	}
	if c.Percent != 0 {
		t.Errorf("percent = %v, want 0 for a zero budget", c.Percent)
	}
	if !c.OverBudget {
		t.Error("any spend against a zero budget is over budget")
	}
	if len(cmp.Overages) != 1 || cmp.Overages[0].Overage != 50 {
		t.Errorf("overages = %+v", cmp.Overages)
	}
}

func TestCompareBudget_MonthsMultiplier(t *testing.T) {
	budget := BudgetMap{"Groceries": 600}
	actual := map[string]float64{"Groceries": 1500}

	cmp := CompareBudget(budget, actual, 3, day(2025, 8, 15))
	c := cmp.Categories["Groceries"]
	if c.Budgeted != 1800 {
		t.Errorf("budgeted = %v, want 1800", c.Budgeted)
	}
	if c.OverBudget {
		t.Error("1500 against 1800 is not over budget")
	}
	if c.Percent != round2(1500.0/1800.0*100) {
		t.Errorf("percent = %v", c.Percent)
	}
}

func TestCompareBudget_OverageRanking(t *testing.T) {
	budget := BudgetMap{"A": 100, "B": 100, "C": 100}
	actual := map[string]float64{"A": 150, "B": 400, "C": 90}

	cmp := CompareBudget(budget, actual, 1, day(2025, 8, 15))
	if len(cmp.Overages) != 2 {
		t.Fatalf("overages = %+v", cmp.Overages)
	}
	if cmp.Overages[0].Category != "B" || cmp.Overages[1].Category != "A" {
		t.Errorf("ranking = %v then %v, want B then A", cmp.Overages[0].Category, cmp.Overages[1].Category)
	}
	if cmp.TotalBudgeted != 300 || cmp.TotalSpent != 640 || cmp.TotalRemaining != -340 {
		t.Errorf("totals = %v / %v / %v", cmp.TotalBudgeted, cmp.TotalSpent, cmp.TotalRemaining)
	}
}

func TestCompareBudget_DaysRemaining(t *testing.T) {
	cmp := CompareBudget(BudgetMap{}, nil, 1, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))
	if cmp.DaysElapsed != 10 {
		t.Errorf("days elapsed = %d, want 10", cmp.DaysElapsed)
	}
	if cmp.DaysRemaining != 18 {
		t.Errorf("days remaining = %d, want 18 (Feb 2025 has 28 days)", cmp.DaysRemaining)
	}
}
