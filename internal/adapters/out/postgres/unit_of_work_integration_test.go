package postgres_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/postgres/pgtest"
	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.BudgetRepository())
	suite.NotNil(uow1.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Rollback(ctx), "Rollback after commit has no transaction")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

// Creating an order and marking its budget converted commit together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	b := suite.approvedBudget(ctx, 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	locked, err := uow.BudgetRepository().GetForUpdate(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.AssignOrderNumber(suite.number(sequence.OrderDocument, 1), time.Now()))
	snap, err := locked.Snapshot()
	suite.Require().NoError(err)

	o, err := order.NewOrderFromBudget(snap, 1, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(locked.MarkConverted(o.ID(), suite.actor(), time.Now()))
	suite.Require().NoError(uow.BudgetRepository().Update(ctx, locked))

	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	stored, err := reader.BudgetRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(budget.Converted, stored.Status())
	suite.Equal(o.ID(), *stored.OrderID())

	storedOrder, err := reader.OrderRepository().GetByBudgetID(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(stored.OrderNumber(), storedOrder.Number())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	b := suite.approvedBudget(ctx, 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.BudgetRepository().GetForUpdate(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(locked.AssignOrderNumber(suite.number(sequence.OrderDocument, 1), time.Now()))
	snap, err := locked.Snapshot()
	suite.Require().NoError(err)
	o, err := order.NewOrderFromBudget(snap, 1, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().GetByBudgetID(ctx, b.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Order should not exist after rollback")
	stored, err := reader.BudgetRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(budget.Approved, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_LogsCommittedWrites() {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	factory := postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, logger)

	uow := factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BudgetRepository().Add(ctx, suite.draft(1)))
	suite.Require().NoError(uow.BudgetRepository().Add(ctx, suite.draft(2)))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Contains(buf.String(), "Unit of work committed")
	suite.Contains(buf.String(), "budget:1")
	suite.Contains(buf.String(), "budget:2")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackLogsNothing() {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	uow := postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, logger).Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.BudgetRepository().Add(ctx, suite.draft(1)))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(buf.String())
}

// A second GetForUpdate on the same budget waits until the first
// transaction ends.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetForUpdateSerializes() {
	ctx := context.Background()
	b := suite.approvedBudget(ctx, 1)

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	_, err := first.BudgetRepository().GetForUpdate(ctx, b.ID())
	suite.Require().NoError(err)

	acquired := make(chan time.Time, 1)
	go func() {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			close(acquired)
			return
		}
		defer func() {
			_ = second.Rollback(ctx)
		}()
		if _, err := second.BudgetRepository().GetForUpdate(ctx, b.ID()); err != nil {
			close(acquired)
			return
		}
		acquired <- time.Now()
	}()

	select {
	case <-acquired:
		suite.Fail("second lock acquired while the first transaction was open")
	case <-time.After(300 * time.Millisecond):
	}

	released := time.Now()
	suite.Require().NoError(first.Commit(ctx))

	select {
	case at, ok := <-acquired:
		suite.Require().True(ok, "second transaction failed")
		suite.False(at.Before(released))
	case <-time.After(5 * time.Second):
		suite.Fail("second lock never acquired")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	b := suite.draft(1)

	suite.Require().NoError(uow.BudgetRepository().Add(ctx, b))

	retrieved, err := suite.factory.Create().BudgetRepository().Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(b.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) actor() kernel.Actor {
	a, err := kernel.NewActor(1, kernel.RoleModerator)
	suite.Require().NoError(err)
	return a
}

func (suite *UnitOfWorkIntegrationTestSuite) number(t sequence.DocumentType, v int64) sequence.Number {
	n, err := sequence.DefaultScheme().Number(t, time.Now(), v)
	suite.Require().NoError(err)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) draft(ref int64) *budget.Budget {
	q, err := quote.NewQuote(quote.Params{Title: "Letterheads", RunSize: 2000, UnitPrice: decimal.RequireFromString("0.05")})
	suite.Require().NoError(err)
	client, center := kernel.ID(10), kernel.ID(20)
	b, err := budget.NewBudget(suite.number(sequence.BudgetDocument, ref),
		budget.Draft{Quote: q, ClientID: &client, CenterID: &center}, 1, time.Now())
	suite.Require().NoError(err)
	return b
}

func (suite *UnitOfWorkIntegrationTestSuite) approvedBudget(ctx context.Context, ref int64) *budget.Budget {
	b := suite.draft(ref)
	suite.Require().NoError(b.Submit(suite.actor(), time.Now()))
	suite.Require().NoError(b.Approve(suite.actor(), time.Now()))
	suite.Require().NoError(suite.factory.Create().BudgetRepository().Add(ctx, b))
	return b
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
