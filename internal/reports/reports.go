// Package reports renders the archived Markdown reports from analysis
// results.
package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"finhub/internal/core"
)

const generatedFormat = "January 2, 2006 at 3:04 PM"

// RenderHealthReport renders the financial health score report.
func RenderHealthReport(hs core.HealthScore, fund core.EmergencyFund, generated time.Time) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Financial Health Score\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generated.Format(generatedFormat))
	fmt.Fprintf(&b, "## Overall Score\n\n")
	fmt.Fprintf(&b, "### %.0f / %.0f (Grade: %s)\n\n", hs.TotalScore, hs.MaxScore, hs.Grade)

	fmt.Fprintf(&b, "## Component Scores\n\n")

	fmt.Fprintf(&b, "### Emergency Fund: %.1f / %.0f\n", hs.EmergencyFund.Score, hs.EmergencyFund.MaxScore)
	fmt.Fprintf(&b, "**Status:** %s\n", hs.EmergencyFund.Status)
	fmt.Fprintf(&b, "- Coverage: %.1f months of expenses\n", hs.EmergencyFund.MonthsCoverage)
	fmt.Fprintf(&b, "- Target: %.0f months\n\n", hs.EmergencyFund.TargetMonths)

	fmt.Fprintf(&b, "### Debt Management: %.1f / %.0f\n", hs.DebtManagement.Score, hs.DebtManagement.MaxScore)
	fmt.Fprintf(&b, "**Status:** %s\n", hs.DebtManagement.Status)
	fmt.Fprintf(&b, "- Debt-to-income ratio: %.1f%%\n", hs.DebtManagement.DTI*100)
	fmt.Fprintf(&b, "- High-interest debt: $%.0f\n\n", hs.DebtManagement.HighInterestDebt)

	if hs.SavingsRate != nil {
		fmt.Fprintf(&b, "### Savings Rate: %.1f / %.0f\n", hs.SavingsRate.Score, hs.SavingsRate.MaxScore)
		fmt.Fprintf(&b, "**Status:** %s\n", hs.SavingsRate.Status)
		fmt.Fprintf(&b, "- Rate: %.1f%% of income (target %.0f%%)\n", hs.SavingsRate.SavingsRate*100, hs.SavingsRate.TargetRate*100)
		fmt.Fprintf(&b, "- Monthly savings: $%.0f\n\n", hs.SavingsRate.MonthlySavings)
	}

	fmt.Fprintf(&b, "### Cash Flow: %.1f / %.0f\n", hs.CashFlow.Score, hs.CashFlow.MaxScore)
	fmt.Fprintf(&b, "**Status:** %s\n", hs.CashFlow.Status)
	fmt.Fprintf(&b, "- Monthly surplus: $%.0f\n", hs.CashFlow.MonthlyCashFlow)
	fmt.Fprintf(&b, "- Surplus rate: %.1f%%\n\n", hs.CashFlow.CashFlowPct*100)

	fmt.Fprintf(&b, "## Emergency Fund Detail\n\n")
	fmt.Fprintf(&b, "- Balance: $%.0f covering %.1f months ($%.0f/month)\n",
		fund.CurrentBalance, fund.MonthsCovered, fund.MonthlyExpenses)
	fmt.Fprintf(&b, "- 3-month target: $%.0f (%.0f%% funded)\n", fund.ThreeMonths.Amount, fund.ThreeMonths.Percent)
	fmt.Fprintf(&b, "- 6-month target: $%.0f (%.0f%% funded)\n\n", fund.SixMonths.Amount, fund.SixMonths.Percent)

	if len(hs.Recommendations) > 0 {
		fmt.Fprintf(&b, "## Recommendations\n\n")
		for _, r := range hs.Recommendations {
			fmt.Fprintf(&b, "- **[%s] %s**: %s. %s\n", r.Priority, r.Category, r.Issue, r.Action)
		}
		b.WriteString("\n")
	}

	return []byte(b.String())
}

// RenderBudgetReport renders the budget vs actual report.
func RenderBudgetReport(cmp core.BudgetComparison, generated time.Time) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Budget vs Actual\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generated.Format(generatedFormat))
	fmt.Fprintf(&b, "%d days elapsed, %d remaining in the month.\n\n", cmp.DaysElapsed, cmp.DaysRemaining)

	fmt.Fprintf(&b, "| Category | Budget | Actual | Remaining | Used | Status |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|---|\n")

	categories := make([]string, 0, len(cmp.Categories))
	for name := range cmp.Categories {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	for _, name := range categories {
		c := cmp.Categories[name]
		status := "OK"
		if c.OverBudget {
			status = "OVER"
		}
		fmt.Fprintf(&b, "| %s | $%.0f | $%.0f | $%.0f | %.0f%% | %s |\n",
			name, c.Budgeted, c.Actual, c.Remaining, c.Percent, status)
	}
	fmt.Fprintf(&b, "| **Total** | **$%.0f** | **$%.0f** | **$%.0f** | | |\n\n",
		cmp.TotalBudgeted, cmp.TotalSpent, cmp.TotalRemaining)

	fmt.Fprintf(&b, "## Problem Areas\n\n")
	if len(cmp.Overages) == 0 {
		b.WriteString("All categories within budget.\n")
	} else {
		for _, o := range cmp.Overages {
			fmt.Fprintf(&b, "- **%s**: over by $%.2f\n", o.Category, o.Overage)
		}
	}
	b.WriteString("\n")

	return []byte(b.String())
}

// RenderPayoffReport renders the debt payoff report.
func RenderPayoffReport(plan core.PayoffPlan, generated time.Time) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Debt Payoff Plan\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generated.Format(generatedFormat))

	if plan.TotalBalance <= 0 {
		b.WriteString("No revolving debt. Nothing to pay off.\n")
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Total balance $%.0f at a blended APR of %.2f%%.\n\n", plan.TotalBalance, plan.WeightedAPR)

	fmt.Fprintf(&b, "## Payment Scenarios\n\n")
	fmt.Fprintf(&b, "| Payment | Months | Years | Interest | Total Paid |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	for _, s := range plan.Scenarios {
		if s.Months == nil {
			fmt.Fprintf(&b, "| %s | never | - | - | - |\n", s.Label)
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %.1f | $%.0f | $%.0f |\n",
			s.Label, *s.Months, *s.Years, s.TotalInterest, s.TotalPaid)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Cards (avalanche order)\n\n")
	for _, c := range plan.Cards {
		timeline := "never pays off at the minimum"
		if c.MonthsToPayoff != nil {
			timeline = fmt.Sprintf("%d months at the minimum", *c.MonthsToPayoff)
		}
		fmt.Fprintf(&b, "- **%s**: $%.0f at %.2f%% APR, minimum $%.0f, %s\n",
			c.Name, c.Balance, c.APR, c.MinPayment, timeline)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Recommendation\n\n")
	fmt.Fprintf(&b, "%s.", plan.Recommendation.Description)
	if plan.Recommendation.TargetPayment > 0 {
		fmt.Fprintf(&b, " Target $%.0f/month", plan.Recommendation.TargetPayment)
		if plan.Recommendation.PayoffMonths != nil {
			fmt.Fprintf(&b, " to be debt-free in %d months", *plan.Recommendation.PayoffMonths)
		}
		b.WriteString(".")
	}
	b.WriteString("\n")

	return []byte(b.String())
}
