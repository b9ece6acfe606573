package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrSubmitBudgetCommandIsNotConstructed = errors.New(
	"SubmitBudgetCommand must be created via NewSubmitBudgetCommand constructor",
)

// SubmitBudgetCommand asks to move a draft budget to SUBMITTED.
//
// Example:
//
//	cmd, err := NewSubmitBudgetCommand(budgetID, actor)
//	if err != nil {
//	    return err
//	}
//	submitted, err := handler.Handle(ctx, cmd)
type SubmitBudgetCommand struct {
	budgetID kernel.ID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewSubmitBudgetCommand(budgetID kernel.ID, actor kernel.Actor) (SubmitBudgetCommand, error) {
	if err := validateBudgetTarget(budgetID, actor); err != nil {
		return SubmitBudgetCommand{}, err
	}
	return SubmitBudgetCommand{budgetID: budgetID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitBudgetCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBudgetCommandIsNotConstructed)
}

func (c SubmitBudgetCommand) BudgetID() kernel.ID {
	return c.budgetID
}

func (c SubmitBudgetCommand) Actor() kernel.Actor {
	return c.actor
}
