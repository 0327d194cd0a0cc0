package services

import (
	"fmt"

	"finhub/internal/core"
)

// Alert severities.
const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
)

// lowCashThreshold is the liquid-cash floor below which a critical alert
// fires.
const lowCashThreshold = 5000.0

// Alert is one actionable dashboard item.
type Alert struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Action   string `json:"action,omitempty"`
}

// generateAlerts derives the alert list from an already-composed dashboard.
func generateAlerts(data *DashboardData) []Alert {
	var alerts []Alert

	if data.Snapshot.LiquidCash < lowCashThreshold {
		alerts = append(alerts, Alert{
			Type:     AlertCritical,
			Category: "Cash",
			Message:  fmt.Sprintf("Liquid cash $%.0f is below the $%.0f floor", data.Snapshot.LiquidCash, lowCashThreshold),
			Action:   "Pause discretionary spending until the buffer recovers",
		})
	}

	for _, o := range data.BudgetVsActual.Overages {
		alerts = append(alerts, Alert{
			Type:     AlertWarning,
			Category: o.Category,
			Message:  fmt.Sprintf("%s is $%.2f over budget this month", o.Category, o.Overage),
		})
	}

	for _, a := range data.Anomalies.CategoryAnomalies {
		if a.Type != core.AnomalyHighSpending {
			continue
		}
		alerts = append(alerts, Alert{
			Type:     AlertWarning,
			Category: a.Category,
			Message:  a.Message,
		})
	}

	return alerts
}
