package commands

import (
	"context"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/sequence"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// CreateOrderCommandHandler creates a direct order numbered from the PED
// sequence, the same partition budget conversions draw from.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, allocator, metrics)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	allocator  ports.SequenceAllocator
	policy     services.AuthorizationPolicy
	metrics    ports.WorkflowMetrics
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, allocator ports.SequenceAllocator, metrics ports.WorkflowMetrics,
) CreateOrderCommandHandler {
	if metrics == nil {
		metrics = ports.NopWorkflowMetrics{}
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		policy:     services.NewAuthorizationPolicy(),
		metrics:    metrics,
	}
}

// Handle allocates the order number outside the transaction, then inserts the
// order. A failed insert leaves a gap in the sequence, never a duplicate.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}
	defer func() { h.metrics.ObserveTransition(string(services.ActionCreateOrder), err) }()

	if err = h.policy.Authorize(cmd.Actor(), services.ActionCreateOrder); err != nil {
		return nil, err
	}

	number, err := h.allocator.Next(ctx, sequence.OrderDocument)
	if err != nil {
		return nil, err
	}

	o, err := order.NewDirectOrder(number, cmd.Quote(), cmd.ClientID(), cmd.CenterID(), cmd.Actor().UserID(), now())
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

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
