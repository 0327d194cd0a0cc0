package sheets

import (
	"context"

	"finhub/internal/core"
)

// Ports for outbound adapters.
type (
	// BudgetReader pulls the household's per-category monthly budget from
	// wherever it is maintained.
	BudgetReader interface {
		ReadBudget(ctx context.Context) (core.BudgetMap, error)
	}
)
