package ports

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add inserts a new order and assigns the storage id to it. A second order
	// for the same budget violates a unique index and is reported as
	// *errs.ConflictDetectedError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order with the same optimistic version check as
	// BudgetRepository.Update.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order. Returns *errs.ObjectNotFoundError if the id is unknown.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetByBudgetID loads the order derived from a budget.
	// Returns *errs.ObjectNotFoundError if the budget has none.
	GetByBudgetID(ctx context.Context, budgetID kernel.ID) (*order.Order, error)

	// Delete removes an order, checking its version like Update.
	Delete(ctx context.Context, aggregate *order.Order) error
}
