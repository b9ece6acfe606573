package commands

import (
	"context"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// SetOrderStatusCommandHandler writes a new status label. Concurrent edits of
// the same order are caught by the repository's version check.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AuthorizationPolicy
	metrics    ports.WorkflowMetrics
}

func NewSetOrderStatusCommandHandler(uowFactory OrderUoWFactory, metrics ports.WorkflowMetrics) SetOrderStatusCommandHandler {
	if metrics == nil {
		metrics = ports.NopWorkflowMetrics{}
	}
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAuthorizationPolicy(),
		metrics:    metrics,
	}
}

func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}
	defer func() { h.metrics.ObserveTransition(string(services.ActionSetOrderStatus), err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(cmd.Actor(), services.ActionSetOrderStatus); err != nil {
		return nil, err
	}

	if err = o.SetStatus(cmd.Status(), now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
