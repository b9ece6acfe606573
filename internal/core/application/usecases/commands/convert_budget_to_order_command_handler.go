package commands

import (
	"context"
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

// ConvertBudgetToOrderCommandHandler turns an APPROVED budget into an order.
//
// The conversion runs in two transactions, each holding the budget's row lock:
//
//  1. Reserve: check existence, role and state. If the budget has no order
//     number yet, draw one from the PED sequence and store it on the budget.
//     The allocator commits on its own, so the number is spent even if this
//     transaction is rolled back; a later attempt then draws a fresh one.
//  2. Convert: check again, create the order from a snapshot of the budget and
//     mark the budget CONVERTED with a link to the order, in one commit.
//
// A failure in step 2 leaves an APPROVED budget holding a number and no order.
// Retrying reuses that number. Such budgets are listed by the stranded
// conversions query.
//
// Of two concurrent conversions of one budget, exactly one creates the order;
// the other fails with *errs.InvalidTransitionError once it gets the lock. The
// unique index on orders.budget_id backs this up with *errs.ConflictDetectedError.
type ConvertBudgetToOrderCommandHandler struct {
	uowFactory UoWFactory
	allocator  ports.SequenceAllocator
	policy     services.AuthorizationPolicy
	metrics    ports.WorkflowMetrics
}

func NewConvertBudgetToOrderCommandHandler(
	uowFactory UoWFactory, allocator ports.SequenceAllocator, metrics ports.WorkflowMetrics,
) ConvertBudgetToOrderCommandHandler {
	if metrics == nil {
		metrics = ports.NopWorkflowMetrics{}
	}
	return ConvertBudgetToOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		policy:     services.NewAuthorizationPolicy(),
		metrics:    metrics,
	}
}

func (h ConvertBudgetToOrderCommandHandler) Handle(
	ctx context.Context, cmd ConvertBudgetToOrderCommand,
) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}
	defer func() { h.metrics.ObserveTransition(string(services.ActionConvertBudget), err) }()

	if err = h.reserveOrderNumber(ctx, cmd); err != nil {
		return nil, err
	}

	return h.convert(ctx, cmd)
}

// lockConvertible loads the budget FOR UPDATE and runs the conversion guards
// in order: existence, role, state.
func (h ConvertBudgetToOrderCommandHandler) lockConvertible(
	ctx context.Context, repo ports.BudgetRepository, cmd ConvertBudgetToOrderCommand,
) (*budget.Budget, error) {
	b, err := repo.GetForUpdate(ctx, cmd.BudgetID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.Authorize(cmd.Actor(), services.ActionConvertBudget); err != nil {
		return nil, err
	}
	if err = b.ValidateConvert(); err != nil {
		return nil, err
	}
	return b, nil
}

func (h ConvertBudgetToOrderCommandHandler) reserveOrderNumber(ctx context.Context, cmd ConvertBudgetToOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	budgetRepo := uow.BudgetRepository()
	b, err := h.lockConvertible(ctx, budgetRepo, cmd)
	if err != nil {
		return err
	}

	if b.HasOrderNumber() {
		return nil
	}

	number, err := h.allocator.Next(ctx, sequence.OrderDocument)
	if err != nil {
		return err
	}

	if err = b.AssignOrderNumber(number, now()); err != nil {
		return err
	}

	if err = budgetRepo.Update(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h ConvertBudgetToOrderCommandHandler) convert(
	ctx context.Context, cmd ConvertBudgetToOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	budgetRepo := uow.BudgetRepository()
	orderRepo := uow.OrderRepository()

	b, err := h.lockConvertible(ctx, budgetRepo, cmd)
	if err != nil {
		return nil, err
	}

	existing, err := orderRepo.GetByBudgetID(ctx, b.ID())
	switch {
	case err == nil:
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("budget %s already has order %s", b.ID(), existing.ID()))
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	snapshot, err := b.Snapshot()
	if err != nil {
		return nil, err
	}

	at := now()
	o, err := order.NewOrderFromBudget(snapshot, cmd.Actor().UserID(), at)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = b.MarkConverted(o.ID(), cmd.Actor(), at); err != nil {
		return nil, err
	}

	if err = budgetRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
