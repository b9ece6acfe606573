package commands

import (
	"errors"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrCreateBudgetCommandIsNotConstructed = errors.New(
	"CreateBudgetCommand must be created via NewCreateBudgetCommand constructor",
)

// CreateBudgetCommand drafts a new budget. Client and center are optional at
// this point and only required on submit.
//
// Example:
//
//	cmd, err := NewCreateBudgetCommand(actor, quote.Params{Title: "Catalogue", RunSize: 500}, nil, nil, "")
//	if err != nil {
//	    return err
//	}
//	draft, err := handler.Handle(ctx, cmd)
type CreateBudgetCommand struct {
	actor kernel.Actor
	draft budget.Draft

	guard guard.ConstructorGuard
}

func NewCreateBudgetCommand(
	actor kernel.Actor, params quote.Params, clientID, centerID *kernel.ID, observations string,
) (CreateBudgetCommand, error) {
	var actorErr error
	if err := actor.Validate(); err != nil {
		actorErr = errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	q, quoteErr := quote.NewQuote(params)
	if err := errors.Join(actorErr, quoteErr); err != nil {
		return CreateBudgetCommand{}, err
	}

	return CreateBudgetCommand{
		actor: actor,
		draft: budget.Draft{Quote: q, ClientID: clientID, CenterID: centerID, Observations: observations},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBudgetCommand) Validate() error {
	return c.guard.Validate(ErrCreateBudgetCommandIsNotConstructed)
}

func (c CreateBudgetCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateBudgetCommand) Draft() budget.Draft {
	return c.draft
}
