package google

import (
	"fmt"
	"strconv"
	"strings"

	"finhub/internal/core"
)

// parseBudget converts a values matrix (as returned by the Sheets API) into a
// per-category budget map. The first column is the category name, the second
// the monthly amount; a header row is skipped when its amount column is not
// numeric. "Total" rows and blank rows are ignored.
func parseBudget(values [][]interface{}) (core.BudgetMap, error) {
	budget := core.BudgetMap{}
	for i, row := range values {
		category := strings.TrimSpace(cellString(row, 0))
		amountStr := strings.TrimSpace(cellString(row, 1))
		if category == "" {
			continue
		}
		if strings.EqualFold(category, "total") {
			continue
		}

		amount, ok := parseSheetAmount(amountStr)
		if !ok {
			if i == 0 {
				// header row
				continue
			}
			return nil, fmt.Errorf("row %d: unparseable amount %q for category %q", i+1, amountStr, category)
		}
		budget[category] = amount
	}
	return budget, nil
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func parseSheetAmount(s string) (float64, bool) {
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
