package reports

import (
	"strings"
	"testing"
	"time"

	"finhub/internal/core"
)

var testGenerated = time.Date(2025, 8, 15, 9, 30, 0, 0, time.UTC)

func TestRenderHealthReport(t *testing.T) {
	hs := core.ComposeHealthScore(core.HealthInputs{
		LiquidCash:          18000,
		MonthlyExpenses:     3000,
		MonthlyIncome:       6000,
		MonthlyDebtPayments: 500,
	}, nil)
	fund := core.EvaluateEmergencyFund(18000, 3000)

	out := string(RenderHealthReport(hs, fund, testGenerated))

	for _, want := range []string{
		"# Financial Health Score",
		"Grade: A+",
		"### Emergency Fund: 25.0 / 25",
		"6-month target: $18000 (100% funded)",
		"August 15, 2025",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "Savings Rate:") {
		t.Error("savings section should be omitted without savings data")
	}
}

func TestRenderHealthReport_WithSavingsAndRecommendations(t *testing.T) {
	hs := core.ComposeHealthScore(core.HealthInputs{
		LiquidCash:      1000,
		MonthlyExpenses: 4000,
		MonthlyIncome:   3500,
		CreditCardDebt:  8800,
		MonthlySavings:  100,
		HasSavingsData:  true,
	}, []core.Overage{{Category: "Dining & Drinks", Overage: 240.5}})
	fund := core.EvaluateEmergencyFund(1000, 4000)

	out := string(RenderHealthReport(hs, fund, testGenerated))

	for _, want := range []string{
		"### Savings Rate:",
		"## Recommendations",
		"[critical] High-Interest Debt",
		"[warning] Dining & Drinks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderBudgetReport(t *testing.T) {
	cmp := core.CompareBudget(
		core.BudgetMap{"Groceries": 600, "Gas": 120},
		map[string]float64{"Groceries": 750, "Gas": 80},
		1, testGenerated)

	out := string(RenderBudgetReport(cmp, testGenerated))

	for _, want := range []string{
		"# Budget vs Actual",
		"| Gas | $120 | $80 | $40 | 67% | OK |",
		"| Groceries | $600 | $750 | $-150 | 125% | OVER |",
		"- **Groceries**: over by $150.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestRenderBudgetReport_AllWithinBudget(t *testing.T) {
	cmp := core.CompareBudget(core.BudgetMap{"Gas": 120}, map[string]float64{"Gas": 80}, 1, testGenerated)

	out := string(RenderBudgetReport(cmp, testGenerated))
	if !strings.Contains(out, "All categories within budget.") {
		t.Errorf("missing within-budget note\n%s", out)
	}
}

func TestRenderPayoffReport(t *testing.T) {
	plan := core.CalculatePayoffPlan([]core.DebtAccount{
		{Name: "Venture", Balance: 6000, APR: 22.99},
	}, nil)

	out := string(RenderPayoffReport(plan, testGenerated))

	for _, want := range []string{
		"# Debt Payoff Plan",
		"Total balance $6000",
		"## Payment Scenarios",
		"| $200/mo |",
		"**Venture**: $6000 at 22.99% APR",
		"## Recommendation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestRenderPayoffReport_NoDebt(t *testing.T) {
	out := string(RenderPayoffReport(core.CalculatePayoffPlan(nil, nil), testGenerated))
	if !strings.Contains(out, "No revolving debt.") {
		t.Errorf("missing no-debt note\n%s", out)
	}
}
