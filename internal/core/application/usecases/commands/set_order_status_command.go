package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand relabels an order with any valid status.
type SetOrderStatusCommand struct {
	orderID kernel.ID
	actor   kernel.Actor
	status  order.Status

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(orderID kernel.ID, actor kernel.Actor, status order.Status) (SetOrderStatusCommand, error) {
	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	problems = append(problems, status.Validate())
	if err := errors.Join(problems...); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return SetOrderStatusCommand{orderID: orderID, actor: actor, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c SetOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SetOrderStatusCommand) Status() order.Status {
	return c.status
}
