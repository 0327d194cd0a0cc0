package memory

import (
	"context"
	"sync"

	"finhub/internal/core"
)

// Reader is an in-memory BudgetReader for tests and local development.
type Reader struct {
	mu     sync.Mutex
	budget core.BudgetMap
}

func New(budget core.BudgetMap) *Reader {
	r := &Reader{budget: core.BudgetMap{}}
	for k, v := range budget {
		r.budget[k] = v
	}
	return r
}

// ReadBudget returns a copy of the stored budget.
func (r *Reader) ReadBudget(_ context.Context) (core.BudgetMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(core.BudgetMap, len(r.budget))
	for k, v := range r.budget {
		out[k] = v
	}
	return out, nil
}

// Set replaces one category's budget.
func (r *Reader) Set(category string, amount float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budget[category] = amount
}
