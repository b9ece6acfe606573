package commands

import (
	"context"

	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// DeleteOrderCommandHandler removes a direct order. Budget-derived orders are
// refused with a validation error because their budget stays CONVERTED and
// must keep pointing at an existing order; cancel them through their status.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AuthorizationPolicy
	metrics    ports.WorkflowMetrics
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, metrics ports.WorkflowMetrics) DeleteOrderCommandHandler {
	if metrics == nil {
		metrics = ports.NopWorkflowMetrics{}
	}
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAuthorizationPolicy(),
		metrics:    metrics,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}
	defer func() { h.metrics.ObserveTransition(string(services.ActionDeleteOrder), err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.Authorize(cmd.Actor(), services.ActionDeleteOrder); err != nil {
		return err
	}

	if err = o.ValidateDelete(); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
