package core

import "testing"

func TestEvaluateEmergencyFund_StatusTiers(t *testing.T) {
	cases := []struct {
		name     string
		cash     float64
		expenses float64
		want     string
	}{
		{"well funded", 60000, 1000, FundStatusExcellent},
		{"half a month", 500, 1000, FundStatusCritical},
		{"exactly six months", 6000, 1000, FundStatusExcellent},
		{"exactly three months", 3000, 1000, FundStatusGood},
		{"exactly one month", 1000, 1000, FundStatusFair},
		{"just under six", 15000, 2600, FundStatusGood},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fund := EvaluateEmergencyFund(tc.cash, tc.expenses)
			if fund.Status != tc.want {
				t.Errorf("status = %q, want %q (%.2f months)", fund.Status, tc.want, fund.MonthsCovered)
			}
		})
	}
}

func TestEvaluateEmergencyFund_Targets(t *testing.T) {
	fund := EvaluateEmergencyFund(4500, 1500)

	if fund.MonthsCovered != 3 {
		t.Errorf("months covered = %v, want 3", fund.MonthsCovered)
	}
	if fund.DaysCovered != 90 {
		t.Errorf("days covered = %v, want 90", fund.DaysCovered)
	}
	if fund.ThreeMonths.Amount != 4500 || fund.ThreeMonths.Percent != 100 || fund.ThreeMonths.Remaining != 0 {
		t.Errorf("three-month target = %+v", fund.ThreeMonths)
	}
	if fund.SixMonths.Amount != 9000 || fund.SixMonths.Percent != 50 || fund.SixMonths.Remaining != 4500 {
		t.Errorf("six-month target = %+v", fund.SixMonths)
	}
}

func TestEvaluateEmergencyFund_PercentUncapped(t *testing.T) {
	fund := EvaluateEmergencyFund(12000, 1000)
	if fund.ThreeMonths.Percent != 400 {
		t.Errorf("three-month percent = %v, want 400 (no clamping)", fund.ThreeMonths.Percent)
	}
	if fund.SixMonths.Remaining != 0 {
		t.Errorf("overfunded target should have no remaining, got %v", fund.SixMonths.Remaining)
	}
}

func TestEvaluateEmergencyFund_ZeroExpenses(t *testing.T) {
	fund := EvaluateEmergencyFund(5000, 0)
	if fund.Status != FundStatusExcellent {
		t.Errorf("status = %q, want excellent when there is nothing to cover", fund.Status)
	}
	if !fund.Uncomputable {
		t.Error("zero expenses should be marked uncomputable")
	}
	if fund.MonthsCovered != 0 {
		t.Errorf("months covered = %v, want 0 rather than an infinity", fund.MonthsCovered)
	}
}
