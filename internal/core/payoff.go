package core

import (
	"fmt"
	"sort"
)

// DebtAccount is one revolving balance with its APR as a percent (22.99).
type DebtAccount struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	APR     float64 `json:"apr"`
}

// PayoffScenario is one fixed-payment amortization outcome. Months is nil
// when the payment can never reduce principal or the 360-month cap is hit.
type PayoffScenario struct {
	Label          string   `json:"label"`
	MonthlyPayment float64  `json:"monthly_payment"`
	Months         *int     `json:"months"`
	Years          *float64 `json:"years"`
	TotalInterest  float64  `json:"total_interest"`
	TotalPaid      float64  `json:"total_paid"`
}

// CardPayoff is one card's minimum-payment timeline. The minimum payment is
// recomputed each simulated month against the shrinking balance.
type CardPayoff struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	APR            float64 `json:"apr"`
	MinPayment     float64 `json:"min_payment"`
	MonthsToPayoff *int    `json:"months_to_payoff"`
	TotalInterest  float64 `json:"total_interest"`
}

// PayoffRecommendation names the suggested strategy and payment.
type PayoffRecommendation struct {
	Method        string  `json:"method"`
	Description   string  `json:"description"`
	TargetPayment float64 `json:"target_payment"`
	PayoffMonths  *int    `json:"payoff_months"`
}

// PayoffPlan is the full simulator output. Scenarios amortize the aggregate
// balance at the blended APR; this is not a per-account avalanche simulation,
// though Cards carries independent per-card minimum-payment timelines in
// avalanche (highest APR first) order.
type PayoffPlan struct {
	TotalBalance   float64              `json:"total_balance"`
	WeightedAPR    float64              `json:"weighted_apr"`
	Cards          []CardPayoff         `json:"cards"`
	Scenarios      []PayoffScenario     `json:"scenarios"`
	Recommendation PayoffRecommendation `json:"recommendation"`
}

// DefaultPaymentScenarios are the fixed monthly payments simulated when the
// caller supplies none.
var DefaultPaymentScenarios = []float64{200, 500, 1000, 1500}

// maxPayoffMonths caps every simulation at 30 years.
const maxPayoffMonths = 360

const (
	minPaymentRate  = 0.02
	minPaymentFloor = 25
)

// MinimumPayment is the issuer-style floor: 2% of the balance or $25,
// whichever is greater.
func MinimumPayment(balance float64) float64 {
	if p := balance * minPaymentRate; p > minPaymentFloor {
		return p
	}
	return minPaymentFloor
}

// amortize runs the monthly simple simulation for a fixed payment. ok is
// false when the payment never covers interest or the cap is reached.
func amortize(balance, monthlyRate, payment float64) (months int, interest float64, ok bool) {
	for balance > 0 && months < maxPayoffMonths {
		charge := balance * monthlyRate
		principal := payment - charge
		if principal <= 0 {
			return 0, interest, false
		}
		balance -= principal
		interest += charge
		months++
	}
	if balance > 0 {
		return 0, interest, false
	}
	return months, interest, true
}

// amortizeMinimum is the per-card variant: the payment is recomputed each
// month as the minimum due on the current balance.
func amortizeMinimum(balance, monthlyRate float64) (months int, interest float64, ok bool) {
	for balance > 0 && months < maxPayoffMonths {
		payment := MinimumPayment(balance)
		charge := balance * monthlyRate
		principal := payment - charge
		if principal <= 0 {
			return 0, interest, false
		}
		balance -= principal
		interest += charge
		months++
	}
	if balance > 0 {
		return 0, interest, false
	}
	return months, interest, true
}

// SimulatePayoff amortizes a single balance under one fixed monthly payment.
func SimulatePayoff(balance, apr, payment float64) PayoffScenario {
	s := PayoffScenario{
		Label:          fmt.Sprintf("$%.0f/mo", payment),
		MonthlyPayment: payment,
	}
	months, interest, ok := amortize(balance, apr/100/12, payment)
	s.TotalInterest = round2(interest)
	s.TotalPaid = round2(balance + interest)
	if ok {
		years := round2(float64(months) / 12)
		s.Months = &months
		s.Years = &years
	}
	return s
}

// CalculatePayoffPlan simulates the aggregate balance at the blended APR
// under each candidate payment, plus per-card minimum-payment timelines.
func CalculatePayoffPlan(accounts []DebtAccount, payments []float64) PayoffPlan {
	if len(payments) == 0 {
		payments = DefaultPaymentScenarios
	}

	var totalBalance float64
	for _, a := range accounts {
		if a.Balance > 0 {
			totalBalance += a.Balance
		}
	}

	plan := PayoffPlan{TotalBalance: round2(totalBalance)}
	if totalBalance <= 0 {
		plan.Recommendation = PayoffRecommendation{Method: "avalanche", Description: "Pay highest APR first"}
		return plan
	}

	var weighted float64
	for _, a := range accounts {
		if a.Balance > 0 {
			weighted += a.Balance * a.APR
		}
	}
	plan.WeightedAPR = round2(weighted / totalBalance)

	// Avalanche order for the per-card view.
	cards := make([]DebtAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.Balance > 0 {
			cards = append(cards, a)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].APR > cards[j].APR })

	for _, card := range cards {
		cp := CardPayoff{
			Name:       card.Name,
			Balance:    card.Balance,
			APR:        card.APR,
			MinPayment: round2(MinimumPayment(card.Balance)),
		}
		months, interest, ok := amortizeMinimum(card.Balance, card.APR/100/12)
		cp.TotalInterest = round2(interest)
		if ok {
			cp.MonthsToPayoff = &months
		}
		plan.Cards = append(plan.Cards, cp)
	}

	for _, payment := range payments {
		plan.Scenarios = append(plan.Scenarios, SimulatePayoff(totalBalance, plan.WeightedAPR, payment))
	}

	plan.Recommendation = recommendPayoff(plan.Scenarios)
	return plan
}

// recommendPayoff picks the smallest scenario payment that actually clears
// the balance.
func recommendPayoff(scenarios []PayoffScenario) PayoffRecommendation {
	rec := PayoffRecommendation{Method: "avalanche", Description: "Pay highest APR first"}
	best := -1
	for i, s := range scenarios {
		if s.Months == nil {
			continue
		}
		if best == -1 || s.MonthlyPayment < scenarios[best].MonthlyPayment {
			best = i
		}
	}
	if best >= 0 {
		rec.TargetPayment = scenarios[best].MonthlyPayment
		rec.PayoffMonths = scenarios[best].Months
	}
	return rec
}
