package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrApproveBudgetCommandIsNotConstructed = errors.New(
	"ApproveBudgetCommand must be created via NewApproveBudgetCommand constructor",
)

// ApproveBudgetCommand asks to approve a submitted budget.
type ApproveBudgetCommand struct {
	budgetID kernel.ID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewApproveBudgetCommand(budgetID kernel.ID, actor kernel.Actor) (ApproveBudgetCommand, error) {
	if err := validateBudgetTarget(budgetID, actor); err != nil {
		return ApproveBudgetCommand{}, err
	}
	return ApproveBudgetCommand{budgetID: budgetID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveBudgetCommand) Validate() error {
	return c.guard.Validate(ErrApproveBudgetCommandIsNotConstructed)
}

func (c ApproveBudgetCommand) BudgetID() kernel.ID {
	return c.budgetID
}

func (c ApproveBudgetCommand) Actor() kernel.Actor {
	return c.actor
}
