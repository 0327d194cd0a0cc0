package core

import (
	"sort"
	"time"
)

// SpendingAggregate groups true expenses (amount > 0) by category and by
// calendar month over a filtered window.
type SpendingAggregate struct {
	// ByCategory totals each category over the whole window.
	ByCategory map[string]float64 `json:"by_category"`
	// ByMonth maps YYYY-MM -> category -> total.
	ByMonth map[string]map[string]float64 `json:"by_month"`
	// MonthTotals maps YYYY-MM -> total.
	MonthTotals map[string]float64 `json:"month_totals"`
}

// AggregateSpending partitions expenses into category and month totals.
// months <= 0 means no lookback limit. The window compares whole
// calendar-month distance, so months=1 keeps the as-of month and the
// immediately preceding one.
func AggregateSpending(txns []Transaction, months int, asOf time.Time) SpendingAggregate {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	agg := SpendingAggregate{
		ByCategory:  make(map[string]float64),
		ByMonth:     make(map[string]map[string]float64),
		MonthTotals: make(map[string]float64),
	}

	for _, t := range txns {
		if t.Amount <= 0 {
			continue
		}
		if months > 0 && monthsBetween(t.Date, asOf) > months {
			continue
		}
		key := MonthKey(t.Date)
		agg.ByCategory[t.Category] += t.Amount
		if agg.ByMonth[key] == nil {
			agg.ByMonth[key] = make(map[string]float64)
		}
		agg.ByMonth[key][t.Category] += t.Amount
		agg.MonthTotals[key] += t.Amount
	}
	return agg
}

// CategoryForMonth returns one month's per-category totals, never nil.
func (a SpendingAggregate) CategoryForMonth(monthKey string) map[string]float64 {
	if m := a.ByMonth[monthKey]; m != nil {
		return m
	}
	return map[string]float64{}
}

// CategoryTrend is one category's month series over the trend window.
// Average is taken over the months that actually appear; silent months are
// not zero-filled.
type CategoryTrend struct {
	Months  []string  `json:"months"`
	Amounts []float64 `json:"amounts"`
	Average float64   `json:"average"`
	Total   float64   `json:"total"`
}

// MerchantTotal ranks one merchant by window spend.
type MerchantTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// SpendingTrends is the fixed six-month trend view plus a merchant ranking.
type SpendingTrends struct {
	Trends       map[string]CategoryTrend `json:"trends"`
	TopMerchants []MerchantTotal          `json:"top_merchants"`
}

const (
	trendWindowDays = 6 * 30
	topMerchantN    = 10
	trendMinMonths  = 2
)

// AnalyzeSpendingTrends restricts to roughly the last six calendar months and
// computes per-category month series plus a top-merchant ranking. Categories
// seen in fewer than two months carry no usable trend and are omitted.
func AnalyzeSpendingTrends(txns []Transaction, asOf time.Time) SpendingTrends {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	start := asOf.AddDate(0, 0, -trendWindowDays)

	byCategoryMonth := make(map[string]map[string]float64)
	merchantTotals := make(map[string]float64)
	var merchantOrder []string

	for _, t := range txns {
		if t.Amount <= 0 || t.Date.Before(start) {
			continue
		}
		key := MonthKey(t.Date)
		if byCategoryMonth[t.Category] == nil {
			byCategoryMonth[t.Category] = make(map[string]float64)
		}
		byCategoryMonth[t.Category][key] += t.Amount

		if _, seen := merchantTotals[t.Name]; !seen {
			merchantOrder = append(merchantOrder, t.Name)
		}
		merchantTotals[t.Name] += t.Amount
	}

	trends := make(map[string]CategoryTrend, len(byCategoryMonth))
	for category, monthly := range byCategoryMonth {
		months := make([]string, 0, len(monthly))
		for m := range monthly {
			months = append(months, m)
		}
		sort.Strings(months)
		if len(months) > 6 {
			months = months[len(months)-6:]
		}
		if len(months) < trendMinMonths {
			continue
		}

		amounts := make([]float64, len(months))
		var total float64
		for i, m := range months {
			amounts[i] = round2(monthly[m])
			total += monthly[m]
		}
		trends[category] = CategoryTrend{
			Months:  months,
			Amounts: amounts,
			Average: round2(total / float64(len(months))),
			Total:   round2(total),
		}
	}

	// Stable sort over first-seen order keeps exact ties deterministic.
	ranked := make([]MerchantTotal, 0, len(merchantOrder))
	for _, name := range merchantOrder {
		ranked = append(ranked, MerchantTotal{Name: name, Total: round2(merchantTotals[name])})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })
	if len(ranked) > topMerchantN {
		ranked = ranked[:topMerchantN]
	}

	return SpendingTrends{Trends: trends, TopMerchants: ranked}
}
