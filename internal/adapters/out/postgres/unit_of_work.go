// Package postgres provides the GORM-based Unit of Work over the budget and
// order repositories.
//
// A unit of work owns at most one transaction at a time. Repositories obtained
// from it while a transaction is open run inside that transaction, so a
// budget's row lock taken with GetForUpdate is held until Commit or Rollback.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	b, err := uow.BudgetRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// ... change b
//	if err := uow.BudgetRepository().Update(ctx, b); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and
// has no effect, which is what makes the deferred Rollback above safe.
//
// Each command must use its own UnitOfWork; instances are not safe for
// concurrent use.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"printshop/internal/adapters/out/postgres/budgetrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.ID
	Aggregate any
}

func (t trackedAggregate) String() string {
	switch t.Aggregate.(type) {
	case *budget.Budget:
		return fmt.Sprintf("budget:%s", t.ID)
	case *order.Order:
		return fmt.Sprintf("order:%s", t.ID)
	default:
		return fmt.Sprintf("%T:%s", t.Aggregate, t.ID)
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUnitOfWorkFactory builds units of work that report the aggregates
// each commit wrote to logger at debug level.
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, logger: logger}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates its repositories wrote.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin opens a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the open transaction.
// Returns gorm.ErrInvalidTransaction if none is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err == nil && len(uow.trackedAggregates) > 0 {
		uow.logger.LogAttrs(ctx, slog.LevelDebug, "Unit of work committed",
			slog.Any("aggregates", uow.written()))
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards the open transaction and releases its row locks.
// Returns gorm.ErrInvalidTransaction if none is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// BudgetRepository returns a budget repository bound to the open transaction,
// or to the pool when none is open.
func (uow *GormUnitOfWork) BudgetRepository() ports.BudgetRepository {
	return budgetrepo.NewGormBudgetRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository bound to the open transaction,
// or to the pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate is called by the repositories after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) written() []string {
	out := make([]string, len(uow.trackedAggregates))
	for i, t := range uow.trackedAggregates {
		out[i] = t.String()
	}
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
