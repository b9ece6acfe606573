package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrRejectBudgetCommandIsNotConstructed = errors.New(
	"RejectBudgetCommand must be created via NewRejectBudgetCommand constructor",
)

// RejectBudgetCommand asks to reject a submitted budget with a reason.
//
// An empty reason is accepted here and refused by the budget itself, after
// the existence, role and state checks have run.
type RejectBudgetCommand struct {
	budgetID kernel.ID
	actor    kernel.Actor
	reason   string

	guard guard.ConstructorGuard
}

func NewRejectBudgetCommand(budgetID kernel.ID, actor kernel.Actor, reason string) (RejectBudgetCommand, error) {
	if err := validateBudgetTarget(budgetID, actor); err != nil {
		return RejectBudgetCommand{}, err
	}
	return RejectBudgetCommand{
		budgetID: budgetID,
		actor:    actor,
		reason:   reason,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RejectBudgetCommand) Validate() error {
	return c.guard.Validate(ErrRejectBudgetCommandIsNotConstructed)
}

func (c RejectBudgetCommand) BudgetID() kernel.ID {
	return c.budgetID
}

func (c RejectBudgetCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RejectBudgetCommand) Reason() string {
	return c.reason
}
