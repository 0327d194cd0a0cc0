package core

import "testing"

func TestCalculateSnapshot_EmptyConfig(t *testing.T) {
	snap := CalculateSnapshot(AccountConfig{})
	if snap != (Snapshot{}) {
		t.Fatalf("empty config should yield zero totals, got %+v", snap)
	}
}

func TestCalculateSnapshot_WorkedExample(t *testing.T) {
	cfg := AccountConfig{
		"cash_accounts": map[string]any{
			"checking": map[string]any{"balance": 5000.0},
			"savings":  map[string]any{"balance": 10000.0},
		},
		"debt_balances": map[string]any{
			"credit_cards": map[string]any{
				"visa": map[string]any{"balance": 3000.0},
			},
			"personal": map[string]any{"balance": 20000.0},
		},
	}

	snap := CalculateSnapshot(cfg)
	if snap.LiquidCash != 15000 {
		t.Errorf("liquid cash = %v, want 15000", snap.LiquidCash)
	}
	if snap.TotalDebt != 23000 {
		t.Errorf("total debt = %v, want 23000", snap.TotalDebt)
	}
	if snap.NetWorth != -8000 {
		t.Errorf("net worth = %v, want -8000", snap.NetWorth)
	}
	if snap.ConsumerDebt != 23000 || snap.MortgageDebt != 0 {
		t.Errorf("debt split = consumer %v / mortgage %v, want 23000 / 0", snap.ConsumerDebt, snap.MortgageDebt)
	}
}

func TestCalculateSnapshot_MortgageSplit(t *testing.T) {
	cfg := AccountConfig{
		"debt_balances": map[string]any{
			"mortgage_loans": map[string]any{
				"home": map[string]any{"balance": 300000.0},
			},
			"auto": map[string]any{
				"car": map[string]any{"balance": 18000.0},
			},
			"misc": map[string]any{
				"heloc": map[string]any{"balance": 40000.0, "type": "mortgage"},
			},
		},
	}

	snap := CalculateSnapshot(cfg)
	if snap.MortgageDebt != 340000 {
		t.Errorf("mortgage debt = %v, want 340000", snap.MortgageDebt)
	}
	if snap.ConsumerDebt != 18000 {
		t.Errorf("consumer debt = %v, want 18000", snap.ConsumerDebt)
	}
	if snap.TotalDebt != 358000 {
		t.Errorf("total debt = %v, want 358000", snap.TotalDebt)
	}
}

func TestCalculateSnapshot_LiquidFlagAndRecurring(t *testing.T) {
	cfg := AccountConfig{
		"cash_accounts": map[string]any{
			"checking": map[string]any{"balance": 2000.0},
			"cd":       map[string]any{"balance": 5000.0, "liquid": false},
			"hysa":     map[string]any{"balance": 3000.0, "liquid": true},
		},
		"recurring_expenses": map[string]any{
			"utilities": map[string]any{
				"power":    map[string]any{"amount": 180.0},
				"water":    map[string]any{"amount": 45.0},
				"old_cable": map[string]any{"amount": 10.0, "status": "cancelled"},
			},
		},
		"income": map[string]any{"monthly_total": 9000.0},
	}

	snap := CalculateSnapshot(cfg)
	if snap.LiquidCash != 5000 {
		t.Errorf("liquid cash = %v, want 5000 (cd excluded)", snap.LiquidCash)
	}
	if snap.MonthlyRecurring != 225 {
		t.Errorf("monthly recurring = %v, want 225 (cancelled excluded)", snap.MonthlyRecurring)
	}
	if snap.MonthlyIncome != 9000 {
		t.Errorf("monthly income = %v, want 9000", snap.MonthlyIncome)
	}
}

func TestFlatten_BothShapes(t *testing.T) {
	nested := map[string]any{
		"checking": map[string]any{
			"usaa":  map[string]any{"balance": 1000.0},
			"chase": map[string]any{"balance": 500.0},
		},
		"savings": map[string]any{"balance": 2000.0},
		"cash":    150.0,
	}

	flat := Flatten(nested, "balance")
	want := map[string]float64{"usaa": 1000, "chase": 500, "savings": 2000, "cash": 150}
	if len(flat) != len(want) {
		t.Fatalf("flatten = %v, want %v", flat, want)
	}
	for k, v := range want {
		if flat[k] != v {
			t.Errorf("flat[%q] = %v, want %v", k, flat[k], v)
		}
	}
}

func TestParseAccountConfig(t *testing.T) {
	if _, err := ParseAccountConfig([]any{"not", "an", "object"}); err == nil {
		t.Fatal("array document should be rejected")
	}
	cfg, err := ParseAccountConfig(nil)
	if err != nil || len(cfg) != 0 {
		t.Fatalf("nil document should parse to empty config, got %v, %v", cfg, err)
	}
	if _, err := ParseAccountConfig(map[string]any{"cash_accounts": map[string]any{}}); err != nil {
		t.Fatalf("object document rejected: %v", err)
	}
}

func TestCreditCardDebts(t *testing.T) {
	cfg := AccountConfig{
		"credit_cards": map[string]any{
			"venture": map[string]any{"name": "Venture", "balance": 8800.0, "apr": 22.99},
			"paid":    map[string]any{"name": "Paid Off", "balance": 0.0, "apr": 19.99},
		},
	}
	debts := CreditCardDebts(cfg)
	if len(debts) != 1 {
		t.Fatalf("expected 1 card with a balance, got %d", len(debts))
	}
	if debts[0].Name != "Venture" || debts[0].APR != 22.99 {
		t.Fatalf("unexpected card: %+v", debts[0])
	}
}

func TestSavingsProfile(t *testing.T) {
	if _, _, ok := SavingsProfile(AccountConfig{}); ok {
		t.Fatal("no savings sections should report unavailable")
	}

	cfg := AccountConfig{
		"retirement": map[string]any{"monthly_contribution": 1200.0, "employer_match": 400.0},
		"savings":    map[string]any{"hsa_monthly": 250.0},
	}
	monthly, match, ok := SavingsProfile(cfg)
	if !ok || monthly != 1450 || match != 400 {
		t.Fatalf("savings profile = %v, %v, %v", monthly, match, ok)
	}
}
