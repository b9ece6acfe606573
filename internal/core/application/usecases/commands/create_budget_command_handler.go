package commands

import (
	"context"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// CreateBudgetCommandHandler drafts a budget under a freshly issued PRE
// reference. The reference is allocated before the transaction starts; if the
// insert then fails the number stays consumed.
type CreateBudgetCommandHandler struct {
	uowFactory BudgetUoWFactory
	allocator  ports.SequenceAllocator
	policy     services.AuthorizationPolicy
	metrics    ports.WorkflowMetrics
}

func NewCreateBudgetCommandHandler(
	uowFactory BudgetUoWFactory, allocator ports.SequenceAllocator, metrics ports.WorkflowMetrics,
) CreateBudgetCommandHandler {
	if metrics == nil {
		metrics = ports.NopWorkflowMetrics{}
	}
	return CreateBudgetCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		policy:     services.NewAuthorizationPolicy(),
		metrics:    metrics,
	}
}

func (h CreateBudgetCommandHandler) Handle(ctx context.Context, cmd CreateBudgetCommand) (_ *budget.Budget, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}
	defer func() { h.metrics.ObserveTransition(string(services.ActionCreateBudget), err) }()

	if err = h.policy.Authorize(cmd.Actor(), services.ActionCreateBudget); err != nil {
		return nil, err
	}

	reference, err := h.allocator.Next(ctx, sequence.BudgetDocument)
	if err != nil {
		return nil, err
	}

	b, err := budget.NewBudget(reference, cmd.Draft(), cmd.Actor().UserID(), now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BudgetRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
