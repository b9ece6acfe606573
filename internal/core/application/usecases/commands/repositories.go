// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"printshop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// BudgetRepoFactory provides access to the budget repository within a transaction.
	BudgetRepoFactory interface {
		BudgetRepository() ports.BudgetRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BudgetUoW manages transactions for budget-only operations.
	BudgetUoW interface {
		TxManager
		BudgetRepoFactory
	}

	// BudgetUoWFactory creates new budget unit of work instances.
	BudgetUoWFactory interface {
		Create() BudgetUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across budgets and orders. Conversion uses it
	// to create the order and mark the budget in one commit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   budgets := uow.BudgetRepository()
	//   orders := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		BudgetRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// now is the timestamp recorded by every write. Postgres keeps microseconds,
// so values are truncated to compare equal after a round trip.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
