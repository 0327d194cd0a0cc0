package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ccPaymentCategory is the Rocket Money marker for internal transfers that
// pay down a credit card; counting them would double-book the spending that
// created the balance.
const ccPaymentCategory = "Credit Card Payment"

// dateFormats are tried in order. A date that parses under none of them drops
// the row; upstream exports are known to contain stray formatting, so this is
// policy, not an error path.
var dateFormats = []string{"2006-01-02", "01/02/2006", "01/02/06", "2006/01/02"}

// NormalizeOptions controls which rows survive normalization.
type NormalizeOptions struct {
	// IncludeIgnored keeps rows carrying a non-empty ignored flag.
	IncludeIgnored bool
	// IncludeCCPayments keeps credit-card payment transfer rows.
	IncludeCCPayments bool
}

// ParseResult carries the surviving transactions plus enough bookkeeping for
// a caller to surface drop counts without the normalizer ever raising.
type ParseResult struct {
	Transactions []Transaction `json:"transactions"`
	// Dropped counts rows lost to unparseable dates or amounts.
	Dropped int `json:"dropped"`
	// Excluded counts rows filtered by the ignored flag or transfer category.
	Excluded int      `json:"excluded"`
	Warnings []string `json:"warnings,omitempty"`
}

// Normalize converts raw export rows into canonical transactions. Input order
// is preserved; sorting is the caller's concern.
func Normalize(rows []RawRow, opts NormalizeOptions) ParseResult {
	res := ParseResult{Transactions: make([]Transaction, 0, len(rows))}

	for i, row := range rows {
		if !opts.IncludeIgnored && rowField(row, "Ignored From", "Ignored") != "" {
			res.Excluded++
			continue
		}
		category := rowField(row, "Category")
		if !opts.IncludeCCPayments && category == ccPaymentCategory {
			res.Excluded++
			continue
		}

		date, ok := ParseDate(rowField(row, "Date"))
		if !ok {
			res.Dropped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: unparseable date %q", i, rowField(row, "Date")))
			continue
		}

		amount, ok := ParseAmount(rowField(row, "Amount"))
		if !ok {
			res.Dropped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: unparseable amount %q", i, rowField(row, "Amount")))
			continue
		}

		name := rowField(row, "Custom Name")
		if name == "" {
			name = rowField(row, "Name")
		}

		res.Transactions = append(res.Transactions, Transaction{
			Date:        date,
			Name:        name,
			Amount:      amount,
			Category:    category,
			Account:     rowField(row, "Account Name", "Account"),
			Description: rowField(row, "Description"),
		})
	}

	return res
}

// ParseDate tries the fixed format list in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount strips currency formatting ("$1,234.56") before numeric
// conversion. Parentheses are not handled; exports encode sign with a minus.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// rowField looks a header up by any of its known spellings, falling back to a
// case-insensitive scan since key casing varies between export versions.
func rowField(row RawRow, keys ...string) string {
	for _, k := range keys {
		if v, ok := row[k]; ok {
			return strings.TrimSpace(v)
		}
	}
	for _, k := range keys {
		for rk, v := range row {
			if strings.EqualFold(strings.TrimSpace(rk), k) {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}
