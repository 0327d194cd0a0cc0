package core

import "testing"

func TestDetectAnomalies_StrictThreshold(t *testing.T) {
	asOf := day(2025, 8, 15)
	trends := map[string]CategoryTrend{
		"Dining": {Average: 100},
	}

	// Exactly +50% sits on the boundary and is not flagged.
	txns := []Transaction{{Date: day(2025, 8, 5), Name: "Bistro", Amount: 150, Category: "Dining"}}
	rep := DetectAnomalies(txns, trends, asOf)
	if rep.AnomalyCount != 0 {
		t.Fatalf("exactly +50%% should not flag, got %+v", rep.CategoryAnomalies)
	}

	txns = []Transaction{{Date: day(2025, 8, 5), Name: "Bistro", Amount: 151, Category: "Dining"}}
	rep = DetectAnomalies(txns, trends, asOf)
	if rep.AnomalyCount != 1 {
		t.Fatalf("+51%% should flag, got %+v", rep.CategoryAnomalies)
	}
	a := rep.CategoryAnomalies[0]
	if a.Type != AnomalyHighSpending || a.PercentChange != 51 {
		t.Errorf("anomaly = %+v", a)
	}
}

func TestDetectAnomalies_LowSpending(t *testing.T) {
	asOf := day(2025, 8, 15)
	trends := map[string]CategoryTrend{
		"Groceries": {Average: 400},
		"Gas":       {Average: 100},
	}
	txns := []Transaction{
		{Date: day(2025, 8, 5), Name: "Kroger", Amount: 100, Category: "Groceries"},
		// Gas at exactly -50% stays unflagged.
		{Date: day(2025, 8, 6), Name: "Shell", Amount: 50, Category: "Gas"},
	}

	rep := DetectAnomalies(txns, trends, asOf)
	if rep.AnomalyCount != 1 {
		t.Fatalf("anomalies = %+v", rep.CategoryAnomalies)
	}
	a := rep.CategoryAnomalies[0]
	if a.Category != "Groceries" || a.Type != AnomalyLowSpending || a.PercentChange != -75 {
		t.Errorf("anomaly = %+v", a)
	}
}

func TestDetectAnomalies_ZeroAverageSkipped(t *testing.T) {
	asOf := day(2025, 8, 15)
	trends := map[string]CategoryTrend{"New": {Average: 0}}
	txns := []Transaction{{Date: day(2025, 8, 5), Name: "First", Amount: 999, Category: "New"}}

	rep := DetectAnomalies(txns, trends, asOf)
	if rep.AnomalyCount != 0 {
		t.Fatalf("zero-average category should be skipped, got %+v", rep.CategoryAnomalies)
	}
}

func TestDetectAnomalies_DeviationOrdering(t *testing.T) {
	asOf := day(2025, 8, 15)
	trends := map[string]CategoryTrend{
		"A": {Average: 100}, // +60%
		"B": {Average: 100}, // -80%
		"C": {Average: 100}, // +200%
	}
	txns := []Transaction{
		{Date: day(2025, 8, 1), Amount: 160, Category: "A"},
		{Date: day(2025, 8, 2), Amount: 20, Category: "B"},
		{Date: day(2025, 8, 3), Amount: 300, Category: "C"},
	}

	rep := DetectAnomalies(txns, trends, asOf)
	if rep.AnomalyCount != 3 {
		t.Fatalf("anomalies = %+v", rep.CategoryAnomalies)
	}
	order := []string{rep.CategoryAnomalies[0].Category, rep.CategoryAnomalies[1].Category, rep.CategoryAnomalies[2].Category}
	if order[0] != "C" || order[1] != "B" || order[2] != "A" {
		t.Errorf("order = %v, want C B A by absolute deviation", order)
	}
}

func TestDetectAnomalies_LargeTransactions(t *testing.T) {
	asOf := day(2025, 8, 15)
	txns := []Transaction{
		{Date: day(2025, 8, 1), Name: "Exactly", Amount: 500, Category: "Home"},
		{Date: day(2025, 8, 2), Name: "Roof", Amount: 2400, Category: "Home"},
		{Date: day(2025, 8, 3), Name: "Laptop", Amount: 1200, Category: "Shopping"},
		// Prior month never counts.
		{Date: day(2025, 7, 3), Name: "Old", Amount: 3000, Category: "Home"},
	}

	rep := DetectAnomalies(txns, nil, asOf)
	if len(rep.LargeTransactions) != 2 {
		t.Fatalf("large transactions = %+v", rep.LargeTransactions)
	}
	if rep.LargeTransactions[0].Name != "Roof" || rep.LargeTransactions[1].Name != "Laptop" {
		t.Errorf("ordering = %+v, want largest first", rep.LargeTransactions)
	}
	if rep.LargeTransactions[0].Date != "2025-08-02" {
		t.Errorf("date = %q", rep.LargeTransactions[0].Date)
	}
}
