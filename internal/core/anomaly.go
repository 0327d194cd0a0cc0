package core

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Anomaly classification.
const (
	AnomalyHighSpending = "high_spending"
	AnomalyLowSpending  = "low_spending"
)

const (
	// anomalyThresholdPct flags deviations strictly beyond ±50%.
	anomalyThresholdPct = 50.0
	// largeTransactionMin is the single-transaction review threshold.
	largeTransactionMin = 500.0
	largeTransactionN   = 10
)

// CategoryAnomaly is one category whose current-month spend deviates from its
// trailing average beyond the threshold.
type CategoryAnomaly struct {
	Category      string  `json:"category"`
	Type          string  `json:"type"`
	Current       float64 `json:"current"`
	Average       float64 `json:"average"`
	PercentChange float64 `json:"percent_change"`
	Message       string  `json:"message"`
}

// LargeTransaction is one oversized current-month transaction.
type LargeTransaction struct {
	Date     string  `json:"date"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// AnomalyReport is the detector output.
type AnomalyReport struct {
	CategoryAnomalies []CategoryAnomaly  `json:"category_anomalies"`
	LargeTransactions []LargeTransaction `json:"large_transactions"`
	AnomalyCount      int                `json:"anomaly_count"`
}

// DetectAnomalies compares the as-of month's per-category spend against the
// trailing trend averages, and separately collects large single transactions.
// Categories with a zero historical average are skipped: no meaningful ratio
// exists, so they are neither an anomaly nor an error. A deviation of exactly
// ±50% is not flagged; the rule is strict.
func DetectAnomalies(txns []Transaction, trends map[string]CategoryTrend, asOf time.Time) AnomalyReport {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	currentMonth := MonthKey(asOf)

	current := make(map[string]float64)
	var large []LargeTransaction
	for _, t := range txns {
		if MonthKey(t.Date) != currentMonth {
			continue
		}
		if t.Amount > 0 {
			current[t.Category] += t.Amount
		}
		if t.Amount > largeTransactionMin {
			large = append(large, LargeTransaction{
				Date:     t.Date.Format("2006-01-02"),
				Name:     t.Name,
				Amount:   t.Amount,
				Category: t.Category,
			})
		}
	}

	var anomalies []CategoryAnomaly
	for category, trend := range trends {
		if trend.Average == 0 {
			continue
		}
		spent := current[category]
		change := (spent - trend.Average) / trend.Average * 100

		var kind string
		switch {
		case change > anomalyThresholdPct:
			kind = AnomalyHighSpending
		case change < -anomalyThresholdPct:
			kind = AnomalyLowSpending
		default:
			continue
		}
		anomalies = append(anomalies, CategoryAnomaly{
			Category:      category,
			Type:          kind,
			Current:       round2(spent),
			Average:       trend.Average,
			PercentChange: round2(change),
			Message: fmt.Sprintf("%s: $%.2f this month vs $%.2f average (%+.1f%%)",
				category, spent, trend.Average, change),
		})
	}

	// Largest deviation first keeps the output deterministic.
	sort.SliceStable(anomalies, func(i, j int) bool {
		return math.Abs(anomalies[i].PercentChange) > math.Abs(anomalies[j].PercentChange)
	})

	sort.SliceStable(large, func(i, j int) bool { return large[i].Amount > large[j].Amount })
	if len(large) > largeTransactionN {
		large = large[:largeTransactionN]
	}

	return AnomalyReport{
		CategoryAnomalies: anomalies,
		LargeTransactions: large,
		AnomalyCount:      len(anomalies),
	}
}
