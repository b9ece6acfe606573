// Package ports defines the contracts between the workflow core and its
// collaborators: storage, number allocation and instrumentation.
package ports

import (
	"context"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
)

// BudgetRepository defines the persistence contract for budget aggregates.
type BudgetRepository interface {
	// Add inserts a new budget and assigns the storage id to it.
	Add(ctx context.Context, aggregate *budget.Budget) error

	// Update writes the budget if its stored version still equals
	// aggregate.Version(), then advances the version. A stale version is
	// reported as *errs.ConflictDetectedError, never silently overwritten.
	Update(ctx context.Context, aggregate *budget.Budget) error

	// Get loads a budget without locking it.
	// Returns *errs.ObjectNotFoundError if the id is unknown.
	Get(ctx context.Context, id kernel.ID) (*budget.Budget, error)

	// GetForUpdate loads a budget and locks its row until the surrounding
	// transaction ends, serializing every transition on the same budget.
	GetForUpdate(ctx context.Context, id kernel.ID) (*budget.Budget, error)
}
