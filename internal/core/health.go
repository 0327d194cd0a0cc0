package core

import "fmt"

// Sub-score status labels, graded on percent of the sub-score maximum.
const (
	ScoreStatusExcellent = "excellent"
	ScoreStatusGood      = "good"
	ScoreStatusFair      = "fair"
	ScoreStatusPoor      = "poor"
)

// Recommendation priorities.
const (
	PriorityCritical  = "critical"
	PriorityImportant = "important"
	PriorityWarning   = "warning"
)

const subScoreMax = 25

// HealthInputs carries every figure the composer needs, passed explicitly.
type HealthInputs struct {
	LiquidCash      float64
	MonthlyExpenses float64
	MonthlyIncome   float64
	// MonthlyDebtPayments is the household's total monthly debt service,
	// used for the annualized DTI ratio.
	MonthlyDebtPayments float64
	CreditCardDebt      float64
	// MonthlySavings and EmployerMatch feed the savings-rate sub-score;
	// HasSavingsData false omits that component and shrinks the denominator.
	MonthlySavings float64
	EmployerMatch  float64
	HasSavingsData bool
}

// EmergencyFundScore grades months of expense coverage.
type EmergencyFundScore struct {
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"max_score"`
	MonthsCoverage float64 `json:"months_coverage"`
	TargetMonths   float64 `json:"target_months"`
	Status         string  `json:"status"`
}

// DebtScore combines a DTI band score with a high-interest balance score.
type DebtScore struct {
	Score             float64 `json:"score"`
	MaxScore          float64 `json:"max_score"`
	DTI               float64 `json:"dti"`
	DTIScore          float64 `json:"dti_score"`
	HighInterestDebt  float64 `json:"high_interest_debt"`
	HighInterestScore float64 `json:"hi_debt_score"`
	Status            string  `json:"status"`
}

// SavingsScore grades percent of income saved, employer match included.
type SavingsScore struct {
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"max_score"`
	SavingsRate    float64 `json:"savings_rate"`
	MonthlySavings float64 `json:"monthly_savings"`
	TargetRate     float64 `json:"target_rate"`
	Status         string  `json:"status"`
}

// CashFlowScore grades monthly surplus as a share of income.
type CashFlowScore struct {
	Score           float64 `json:"score"`
	MaxScore        float64 `json:"max_score"`
	MonthlyCashFlow float64 `json:"monthly_cash_flow"`
	CashFlowPct     float64 `json:"cash_flow_pct"`
	Status          string  `json:"status"`
}

// Recommendation is one itemized, data-driven action.
type Recommendation struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Issue    string `json:"issue"`
	Action   string `json:"action"`
}

// HealthScore is the composite result. MaxScore is 100 with savings data,
// 75 without; Grade is taken on the percentage so a missing component never
// reads as a zero against a fixed denominator.
type HealthScore struct {
	TotalScore      float64            `json:"total_score"`
	MaxScore        float64            `json:"max_score"`
	Grade           string             `json:"grade"`
	EmergencyFund   EmergencyFundScore `json:"emergency_fund"`
	DebtManagement  DebtScore          `json:"debt_management"`
	SavingsRate     *SavingsScore      `json:"savings_rate,omitempty"`
	CashFlow        CashFlowScore      `json:"cash_flow"`
	Recommendations []Recommendation   `json:"recommendations"`
}

// ComposeHealthScore builds the four sub-scores and the composite grade.
// overBudget feeds per-category budget recommendations; pass nil when no
// budget comparison ran.
func ComposeHealthScore(in HealthInputs, overBudget []Overage) HealthScore {
	hs := HealthScore{
		EmergencyFund:  scoreEmergencyFund(in),
		DebtManagement: scoreDebtManagement(in),
		CashFlow:       scoreCashFlow(in),
	}

	total := hs.EmergencyFund.Score + hs.DebtManagement.Score + hs.CashFlow.Score
	max := float64(3 * subScoreMax)
	if in.HasSavingsData {
		s := scoreSavingsRate(in)
		hs.SavingsRate = &s
		total += s.Score
		max += subScoreMax
	}

	hs.TotalScore = round2(total)
	hs.MaxScore = max
	hs.Grade = gradeFor(total / max * 100)
	hs.Recommendations = recommend(hs, overBudget)
	return hs
}

// scoreEmergencyFund interpolates linearly between the 0/1/3/6-month
// breakpoints worth 0/5/15/25 points.
func scoreEmergencyFund(in HealthInputs) EmergencyFundScore {
	var coverage float64
	if in.MonthlyExpenses > 0 {
		coverage = in.LiquidCash / in.MonthlyExpenses
	} else if in.LiquidCash > 0 {
		coverage = 6 // nothing to cover counts as fully covered
	}

	var score float64
	switch {
	case coverage >= 6:
		score = 25
	case coverage >= 3:
		score = 15 + (coverage-3)/3*10
	case coverage >= 1:
		score = 5 + (coverage-1)/2*10
	default:
		score = coverage * 5
	}

	return EmergencyFundScore{
		Score:          round2(score),
		MaxScore:       subScoreMax,
		MonthsCoverage: round2(coverage),
		TargetMonths:   6,
		Status:         statusFor(score),
	}
}

// scoreDebtManagement sums a DTI band score (top band requires dti strictly
// below 0.20; exactly 0.20 falls to the next band) and a credit-card balance
// band score.
func scoreDebtManagement(in HealthInputs) DebtScore {
	annualIncome := in.MonthlyIncome * 12

	var dti float64
	if annualIncome > 0 {
		dti = in.MonthlyDebtPayments * 12 / annualIncome
	}

	var dtiScore float64
	switch {
	case annualIncome <= 0:
		dtiScore = 0
	case dti < 0.20:
		dtiScore = 15
	case dti < 0.28:
		dtiScore = 12
	case dti < 0.36:
		dtiScore = 9
	case dti < 0.43:
		dtiScore = 6
	default:
		dtiScore = 3
	}

	var hiScore float64
	cc := in.CreditCardDebt
	switch {
	case cc == 0:
		hiScore = 10
	case cc < 5000:
		hiScore = 8
	case cc < 15000:
		hiScore = 6
	case cc < 30000:
		hiScore = 4
	default:
		hiScore = 2
	}

	score := dtiScore + hiScore
	return DebtScore{
		Score:             round2(score),
		MaxScore:          subScoreMax,
		DTI:               round3(dti),
		DTIScore:          dtiScore,
		HighInterestDebt:  round2(cc),
		HighInterestScore: hiScore,
		Status:            statusFor(score),
	}
}

// scoreSavingsRate is linear through 0/5/10/15/20% worth 0..20 points, with
// a bonus tail reaching 25 at a 30% rate.
func scoreSavingsRate(in HealthInputs) SavingsScore {
	totalMonthly := in.MonthlySavings + in.EmployerMatch

	var rate float64
	if in.MonthlyIncome > 0 {
		rate = totalMonthly / in.MonthlyIncome
	}

	var score float64
	switch {
	case rate >= 0.20:
		bonus := rate - 0.20
		if bonus > 0.10 {
			bonus = 0.10
		}
		score = 20 + bonus*50
	case rate >= 0.15:
		score = 15 + (rate-0.15)/0.05*5
	case rate >= 0.10:
		score = 10 + (rate-0.10)/0.05*5
	case rate >= 0.05:
		score = 5 + (rate-0.05)/0.05*5
	default:
		score = rate * 100
	}
	if score > subScoreMax {
		score = subScoreMax
	}

	return SavingsScore{
		Score:          round2(score),
		MaxScore:       subScoreMax,
		SavingsRate:    round3(rate),
		MonthlySavings: round2(totalMonthly),
		TargetRate:     0.20,
		Status:         statusFor(score),
	}
}

// scoreCashFlow bands surplus percent of income at -5/0/+5/+10/+20% worth
// 0/5/10/15/20/25 points.
func scoreCashFlow(in HealthInputs) CashFlowScore {
	surplus := in.MonthlyIncome - in.MonthlyExpenses

	var pct float64
	if in.MonthlyIncome > 0 {
		pct = surplus / in.MonthlyIncome
	}

	var score float64
	switch {
	case in.MonthlyIncome <= 0:
		score = 0
	case pct >= 0.20:
		score = 25
	case pct >= 0.10:
		score = 20
	case pct >= 0.05:
		score = 15
	case pct >= 0:
		score = 10
	case pct >= -0.05:
		score = 5
	default:
		score = 0
	}

	return CashFlowScore{
		Score:           round2(score),
		MaxScore:        subScoreMax,
		MonthlyCashFlow: round2(surplus),
		CashFlowPct:     round3(pct),
		Status:          statusFor(score),
	}
}

func statusFor(score float64) string {
	pct := score / subScoreMax * 100
	switch {
	case pct >= 90:
		return ScoreStatusExcellent
	case pct >= 75:
		return ScoreStatusGood
	case pct >= 60:
		return ScoreStatusFair
	default:
		return ScoreStatusPoor
	}
}

// gradeFor applies the fixed ladder, boundaries inclusive of the better
// grade: a 90% score is an A+, an 80% score is an A.
func gradeFor(pct float64) string {
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 50:
		return "D"
	default:
		return "F"
	}
}

// recommend inspects each sub-score's diagnostics against fixed thresholds.
// Nothing is re-derived from the final composite score.
func recommend(hs HealthScore, overBudget []Overage) []Recommendation {
	var recs []Recommendation

	if hs.EmergencyFund.Score < 15 {
		recs = append(recs, Recommendation{
			Priority: PriorityCritical,
			Category: "Emergency Fund",
			Issue:    fmt.Sprintf("Only %.1f months of expenses saved", hs.EmergencyFund.MonthsCoverage),
			Action:   "Build emergency fund to 3-6 months of expenses",
		})
	}

	if hs.DebtManagement.HighInterestDebt > 0 {
		recs = append(recs, Recommendation{
			Priority: PriorityCritical,
			Category: "High-Interest Debt",
			Issue:    fmt.Sprintf("$%.0f in credit card debt", hs.DebtManagement.HighInterestDebt),
			Action:   "Pay down highest-APR balances first",
		})
	}

	if hs.CashFlow.MonthlyCashFlow < 0 {
		recs = append(recs, Recommendation{
			Priority: PriorityCritical,
			Category: "Cash Flow",
			Issue:    fmt.Sprintf("Negative cash flow of $%.0f/month", -hs.CashFlow.MonthlyCashFlow),
			Action:   "Cut discretionary spending until income covers expenses",
		})
	}

	if hs.SavingsRate != nil && hs.SavingsRate.SavingsRate < 0.15 {
		recs = append(recs, Recommendation{
			Priority: PriorityImportant,
			Category: "Savings Rate",
			Issue:    fmt.Sprintf("Savings rate %.1f%% is below the 15%% target", hs.SavingsRate.SavingsRate*100),
			Action:   "Raise retirement or HSA contributions toward a 20% rate",
		})
	}

	for _, o := range overBudget {
		recs = append(recs, Recommendation{
			Priority: PriorityWarning,
			Category: o.Category,
			Issue:    fmt.Sprintf("%s over budget by $%.2f", o.Category, o.Overage),
			Action:   fmt.Sprintf("Reduce %s spending", o.Category),
		})
	}

	return recs
}

func round3(v float64) float64 {
	return round2(v*10) / 10
}
