package commands

import (
	"context"
	"errors"
	"time"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

var ErrBudgetTransitionIsNotConstructed = errors.New("budget transition must be created via newBudgetTransition")

// budgetTransition runs one workflow step on a budget as a single locked
// read-modify-write:
//
//	begin -> load FOR UPDATE (NotFound) -> authorize (Unauthorized)
//	      -> apply (InvalidTransition, ValidationFailed) -> versioned update -> commit
//
// The budget is loaded before authorizing, so a caller can tell a missing
// budget from a forbidden one.
type budgetTransition struct {
	uowFactory BudgetUoWFactory
	policy     services.AuthorizationPolicy
	metrics    ports.WorkflowMetrics
}

func newBudgetTransition(uowFactory BudgetUoWFactory, metrics ports.WorkflowMetrics) budgetTransition {
	if metrics == nil {
		metrics = ports.NopWorkflowMetrics{}
	}
	return budgetTransition{
		uowFactory: uowFactory,
		policy:     services.NewAuthorizationPolicy(),
		metrics:    metrics,
	}
}

func (t budgetTransition) run(
	ctx context.Context,
	budgetID kernel.ID,
	actor kernel.Actor,
	action services.Action,
	apply func(b *budget.Budget, at time.Time) error,
) (_ *budget.Budget, err error) {
	if t.uowFactory == nil {
		return nil, ErrBudgetTransitionIsNotConstructed
	}
	defer func() { t.metrics.ObserveTransition(string(action), err) }()

	uow := t.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	budgetRepo := uow.BudgetRepository()
	b, err := budgetRepo.GetForUpdate(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	if err = t.policy.Authorize(actor, action); err != nil {
		return nil, err
	}

	if err = apply(b, now()); err != nil {
		return nil, err
	}

	if err = budgetRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

func validateBudgetTarget(budgetID kernel.ID, actor kernel.Actor) error {
	var problems []error
	if err := budgetID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("budgetId", err))
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	return errors.Join(problems...)
}
