package core

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateSpending_RefundsExcluded(t *testing.T) {
	txns := []Transaction{
		{Date: day(2025, 8, 1), Name: "Store", Amount: 120, Category: "Groceries"},
		{Date: day(2025, 8, 2), Name: "Return", Amount: -50, Category: "Groceries"},
		{Date: day(2025, 8, 3), Name: "Paycheck", Amount: -2500, Category: "Income"},
	}

	agg := AggregateSpending(txns, 0, day(2025, 8, 31))
	if agg.ByCategory["Groceries"] != 120 {
		t.Errorf("groceries total = %v, want 120 (refund excluded)", agg.ByCategory["Groceries"])
	}
	if _, ok := agg.ByCategory["Income"]; ok {
		t.Error("income category should never appear in spend totals")
	}
	if agg.MonthTotals["2025-08"] != 120 {
		t.Errorf("month total = %v, want 120", agg.MonthTotals["2025-08"])
	}
}

func TestAggregateSpending_InclusiveLookback(t *testing.T) {
	asOf := day(2025, 8, 15)
	txns := []Transaction{
		{Date: day(2025, 8, 1), Amount: 10, Category: "A"},
		{Date: day(2025, 7, 20), Amount: 20, Category: "A"},
		{Date: day(2025, 6, 30), Amount: 40, Category: "A"},
	}

	// months=1 keeps the as-of month and the immediately preceding one.
	agg := AggregateSpending(txns, 1, asOf)
	if agg.ByCategory["A"] != 30 {
		t.Errorf("months=1 total = %v, want 30", agg.ByCategory["A"])
	}
	if len(agg.ByMonth) != 2 {
		t.Errorf("months=1 should span 2 month keys, got %v", agg.ByMonth)
	}

	agg = AggregateSpending(txns, 2, asOf)
	if agg.ByCategory["A"] != 70 {
		t.Errorf("months=2 total = %v, want 70", agg.ByCategory["A"])
	}
}

func TestAggregateSpending_MonthPartitioning(t *testing.T) {
	txns := []Transaction{
		{Date: day(2025, 7, 1), Amount: 100, Category: "Rent"},
		{Date: day(2025, 7, 15), Amount: 50, Category: "Groceries"},
		{Date: day(2025, 8, 1), Amount: 100, Category: "Rent"},
	}

	agg := AggregateSpending(txns, 0, day(2025, 8, 31))
	if agg.ByMonth["2025-07"]["Rent"] != 100 || agg.ByMonth["2025-08"]["Rent"] != 100 {
		t.Fatalf("per-month rent wrong: %v", agg.ByMonth)
	}
	if agg.MonthTotals["2025-07"] != 150 {
		t.Errorf("july total = %v, want 150", agg.MonthTotals["2025-07"])
	}
	if got := agg.CategoryForMonth("2025-09"); len(got) != 0 {
		t.Errorf("missing month should be empty, got %v", got)
	}
}

func TestAnalyzeSpendingTrends(t *testing.T) {
	asOf := day(2025, 8, 20)
	txns := []Transaction{
		{Date: day(2025, 6, 5), Name: "Kroger", Amount: 400, Category: "Groceries"},
		{Date: day(2025, 7, 5), Name: "Kroger", Amount: 500, Category: "Groceries"},
		{Date: day(2025, 8, 5), Name: "Kroger", Amount: 600, Category: "Groceries"},
		// Single-month category: no usable trend.
		{Date: day(2025, 8, 10), Name: "Jeweler", Amount: 900, Category: "Gifts"},
		// Outside the six-month window.
		{Date: day(2024, 9, 1), Name: "Old Store", Amount: 50, Category: "Groceries"},
	}

	trends := AnalyzeSpendingTrends(txns, asOf)

	g, ok := trends.Trends["Groceries"]
	if !ok {
		t.Fatal("groceries trend missing")
	}
	if g.Average != 500 || g.Total != 1500 {
		t.Errorf("groceries trend = %+v, want average 500 total 1500", g)
	}
	if len(g.Months) != 3 {
		t.Errorf("groceries months = %v, want 3 entries", g.Months)
	}
	if _, ok := trends.Trends["Gifts"]; ok {
		t.Error("single-month category should have no trend")
	}
}

func TestAnalyzeSpendingTrends_TopMerchants(t *testing.T) {
	asOf := day(2025, 8, 20)
	txns := []Transaction{
		{Date: day(2025, 8, 1), Name: "Alpha", Amount: 100, Category: "Shopping"},
		{Date: day(2025, 8, 2), Name: "Bravo", Amount: 300, Category: "Shopping"},
		{Date: day(2025, 8, 3), Name: "Charlie", Amount: 100, Category: "Shopping"},
	}

	trends := AnalyzeSpendingTrends(txns, asOf)
	if len(trends.TopMerchants) != 3 {
		t.Fatalf("merchants = %v", trends.TopMerchants)
	}
	if trends.TopMerchants[0].Name != "Bravo" {
		t.Errorf("top merchant = %q, want Bravo", trends.TopMerchants[0].Name)
	}
	// Exact ties keep first-seen order.
	if trends.TopMerchants[1].Name != "Alpha" || trends.TopMerchants[2].Name != "Charlie" {
		t.Errorf("tie order = %v, want Alpha then Charlie", trends.TopMerchants[1:])
	}
}
