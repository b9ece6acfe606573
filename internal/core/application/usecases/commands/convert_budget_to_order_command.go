package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrConvertBudgetToOrderCommandIsNotConstructed = errors.New(
	"ConvertBudgetToOrderCommand must be created via NewConvertBudgetToOrderCommand constructor",
)

// ConvertBudgetToOrderCommand asks to turn an approved budget into its order.
type ConvertBudgetToOrderCommand struct {
	budgetID kernel.ID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewConvertBudgetToOrderCommand(budgetID kernel.ID, actor kernel.Actor) (ConvertBudgetToOrderCommand, error) {
	if err := validateBudgetTarget(budgetID, actor); err != nil {
		return ConvertBudgetToOrderCommand{}, err
	}
	return ConvertBudgetToOrderCommand{budgetID: budgetID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ConvertBudgetToOrderCommand) Validate() error {
	return c.guard.Validate(ErrConvertBudgetToOrderCommandIsNotConstructed)
}

func (c ConvertBudgetToOrderCommand) BudgetID() kernel.ID {
	return c.budgetID
}

func (c ConvertBudgetToOrderCommand) Actor() kernel.Actor {
	return c.actor
}
