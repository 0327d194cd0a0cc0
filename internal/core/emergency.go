package core

// Emergency fund status tiers, first match wins from the top.
const (
	FundStatusExcellent = "excellent"
	FundStatusGood      = "good"
	FundStatusFair      = "fair"
	FundStatusCritical  = "critical"
)

// FundTarget is one coverage goal. Percent is the raw progress figure and may
// exceed 100; clamping is a rendering concern.
type FundTarget struct {
	Amount    float64 `json:"amount"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
}

// EmergencyFund reports coverage of monthly expenses by liquid cash.
// Uncomputable marks the zero-expense case, which counts as fully covered
// rather than a division error.
type EmergencyFund struct {
	CurrentBalance  float64    `json:"current_balance"`
	MonthlyExpenses float64    `json:"monthly_expenses"`
	MonthsCovered   float64    `json:"months_covered"`
	DaysCovered     float64    `json:"days_covered"`
	ThreeMonths     FundTarget `json:"three_months"`
	SixMonths       FundTarget `json:"six_months"`
	Status          string     `json:"status"`
	Uncomputable    bool       `json:"uncomputable,omitempty"`
}

// EvaluateEmergencyFund computes months of expenses covered against the
// 3- and 6-month targets. Tier boundaries are inclusive of the better tier:
// exactly 6 months is excellent, exactly 3 is good, exactly 1 is fair.
func EvaluateEmergencyFund(liquidCash, monthlyExpenses float64) EmergencyFund {
	fund := EmergencyFund{
		CurrentBalance:  round2(liquidCash),
		MonthlyExpenses: round2(monthlyExpenses),
	}

	if monthlyExpenses <= 0 {
		// Nothing to cover: undefined-high coverage, reported as excellent.
		fund.Status = FundStatusExcellent
		fund.Uncomputable = true
		return fund
	}

	months := liquidCash / monthlyExpenses
	fund.MonthsCovered = round2(months)
	fund.DaysCovered = round2(months * 30)
	fund.ThreeMonths = fundTarget(liquidCash, monthlyExpenses*3)
	fund.SixMonths = fundTarget(liquidCash, monthlyExpenses*6)

	switch {
	case months >= 6:
		fund.Status = FundStatusExcellent
	case months >= 3:
		fund.Status = FundStatusGood
	case months >= 1:
		fund.Status = FundStatusFair
	default:
		fund.Status = FundStatusCritical
	}
	return fund
}

func fundTarget(balance, target float64) FundTarget {
	t := FundTarget{Amount: round2(target)}
	if target > 0 {
		t.Percent = round2(balance / target * 100)
	}
	if remaining := target - balance; remaining > 0 {
		t.Remaining = round2(remaining)
	}
	return t
}
