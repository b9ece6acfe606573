package commands

import (
	"errors"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/pkg/guard"
)

var ErrUpdateBudgetDraftCommandIsNotConstructed = errors.New(
	"UpdateBudgetDraftCommand must be created via NewUpdateBudgetDraftCommand constructor",
)

// UpdateBudgetDraftCommand replaces the editable fields of a draft.
type UpdateBudgetDraftCommand struct {
	budgetID kernel.ID
	actor    kernel.Actor
	draft    budget.Draft

	guard guard.ConstructorGuard
}

func NewUpdateBudgetDraftCommand(
	budgetID kernel.ID, actor kernel.Actor, params quote.Params, clientID, centerID *kernel.ID, observations string,
) (UpdateBudgetDraftCommand, error) {
	q, quoteErr := quote.NewQuote(params)
	if err := errors.Join(validateBudgetTarget(budgetID, actor), quoteErr); err != nil {
		return UpdateBudgetDraftCommand{}, err
	}
	return UpdateBudgetDraftCommand{
		budgetID: budgetID,
		actor:    actor,
		draft:    budget.Draft{Quote: q, ClientID: clientID, CenterID: centerID, Observations: observations},
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateBudgetDraftCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBudgetDraftCommandIsNotConstructed)
}

func (c UpdateBudgetDraftCommand) BudgetID() kernel.ID {
	return c.budgetID
}

func (c UpdateBudgetDraftCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateBudgetDraftCommand) Draft() budget.Draft {
	return c.draft
}
