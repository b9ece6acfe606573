package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand asks to remove a direct order.
type DeleteOrderCommand struct {
	orderID kernel.ID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.ID, actor kernel.Actor) (DeleteOrderCommand, error) {
	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	if err := errors.Join(problems...); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c DeleteOrderCommand) Actor() kernel.Actor {
	return c.actor
}
