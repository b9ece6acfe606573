package commands_test

import (
	"context"
	"testing"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBudgetRepository struct{ mock.Mock }

func (m *MockBudgetRepository) Add(ctx context.Context, b *budget.Budget) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBudgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBudgetRepository) Get(ctx context.Context, id kernel.ID) (*budget.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*budget.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByBudgetID(ctx context.Context, budgetID kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) BudgetRepository() ports.BudgetRepository {
	args := m.Called()
	return args.Get(0).(ports.BudgetRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockBudgetUoWFactory struct{ mock.Mock }

func (m *MockBudgetUoWFactory) Create() commands.BudgetUoW {
	args := m.Called()
	return args.Get(0).(commands.BudgetUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSequenceAllocator struct{ mock.Mock }

func (m *MockSequenceAllocator) Next(ctx context.Context, docType sequence.DocumentType) (sequence.Number, error) {
	args := m.Called(ctx, docType)
	return args.Get(0).(sequence.Number), args.Error(1)
}

type MockWorkflowMetrics struct{ mock.Mock }

func (m *MockWorkflowMetrics) ObserveTransition(action string, err error) {
	m.Called(action, err)
}

var testTime = time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

func idPtr(v kernel.ID) *kernel.ID { return &v }

func actor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(2, role)
	require.NoError(t, err)
	return a
}

func testQuoteParams() quote.Params {
	return quote.Params{Title: "Annual report", RunSize: 300, UnitPrice: decimal.RequireFromString("2.10")}
}

func number(t *testing.T, docType sequence.DocumentType, v int64) sequence.Number {
	t.Helper()
	n, err := sequence.DefaultScheme().Number(docType, testTime, v)
	require.NoError(t, err)
	return n
}

// budgetIn builds a stored budget with id 3 and walks it to status.
// withParties controls whether client and center are set.
func budgetIn(t *testing.T, status budget.Status, withParties bool) *budget.Budget {
	t.Helper()
	q, err := quote.NewQuote(testQuoteParams())
	require.NoError(t, err)

	draft := budget.Draft{Quote: q}
	if withParties {
		draft.ClientID = idPtr(10)
		draft.CenterID = idPtr(20)
	}
	b, err := budget.NewBudget(number(t, sequence.BudgetDocument, 1), draft, 1, testTime)
	require.NoError(t, err)
	require.NoError(t, b.AssignID(3))

	mod := actor(t, kernel.RoleModerator)
	switch status {
	case budget.Draft:
	case budget.Submitted:
		require.NoError(t, b.Submit(mod, testTime))
	case budget.Approved:
		require.NoError(t, b.Submit(mod, testTime))
		require.NoError(t, b.Approve(mod, testTime))
	case budget.Converted:
		require.NoError(t, b.Submit(mod, testTime))
		require.NoError(t, b.Approve(mod, testTime))
		require.NoError(t, b.AssignOrderNumber(number(t, sequence.OrderDocument, 5), testTime))
		require.NoError(t, b.MarkConverted(50, mod, testTime))
	default:
		t.Fatalf("unsupported status %s", status)
	}
	return b
}

func directOrder(t *testing.T) *order.Order {
	t.Helper()
	q, err := quote.NewQuote(testQuoteParams())
	require.NoError(t, err)
	o, err := order.NewDirectOrder(number(t, sequence.OrderDocument, 8), q, nil, nil, 1, testTime)
	require.NoError(t, err)
	require.NoError(t, o.AssignID(8))
	return o
}

func derivedOrder(t *testing.T) *order.Order {
	t.Helper()
	q, err := quote.NewQuote(testQuoteParams())
	require.NoError(t, err)
	o, err := order.NewOrderFromBudget(budget.Snapshot{
		BudgetID:    3,
		OrderNumber: number(t, sequence.OrderDocument, 9),
		Quote:       q,
	}, 1, testTime)
	require.NoError(t, err)
	require.NoError(t, o.AssignID(9))
	return o
}
