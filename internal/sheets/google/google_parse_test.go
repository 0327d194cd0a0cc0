package google

import (
	"testing"
)

// Build a small matrix emulating the household budget sheet
func TestParseBudget_TypicalSheet(t *testing.T) {
	values := [][]interface{}{
		{"Category", "Monthly Budget"},
		{"Groceries", "$600.00"},
		{"Dining & Drinks", 250.0},
		{"Gas", "120"},
		{"Subscriptions", "45.50"},
		{"", ""},
		{"Total", "$1,015.50"},
	}

	budget, err := parseBudget(values)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if len(budget) != 4 {
		t.Fatalf("categories: got %d, want 4 (%v)", len(budget), budget)
	}
	if budget["Groceries"] != 600 {
		t.Errorf("Groceries = %v, want 600", budget["Groceries"])
	}
	if budget["Dining & Drinks"] != 250 {
		t.Errorf("Dining & Drinks = %v, want 250", budget["Dining & Drinks"])
	}
	if budget["Subscriptions"] != 45.5 {
		t.Errorf("Subscriptions = %v, want 45.5", budget["Subscriptions"])
	}
}

func TestParseBudget_NoHeader(t *testing.T) {
	values := [][]interface{}{
		{"Groceries", 600.0},
		{"Gas", 120.0},
	}

	budget, err := parseBudget(values)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if len(budget) != 2 || budget["Gas"] != 120 {
		t.Fatalf("budget = %v", budget)
	}
}

func TestParseBudget_BadAmountPastHeader(t *testing.T) {
	values := [][]interface{}{
		{"Category", "Monthly Budget"},
		{"Groceries", "six hundred"},
	}

	if _, err := parseBudget(values); err == nil {
		t.Fatal("unparseable amount past the header row should error")
	}
}

func TestParseBudget_Empty(t *testing.T) {
	budget, err := parseBudget(nil)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if len(budget) != 0 {
		t.Fatalf("budget = %v, want empty", budget)
	}
}
