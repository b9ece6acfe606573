package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/quote"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a direct order, one that
// skips the budget workflow.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, quote.Params{Title: "Flyers", RunSize: 1000}, &clientID, &centerID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created", created.Number())
type CreateOrderCommand struct {
	actor    kernel.Actor
	quote    quote.Quote
	clientID *kernel.ID
	centerID *kernel.ID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the actor and the quote.
// Returns an error naming every invalid field.
func NewCreateOrderCommand(
	actor kernel.Actor, params quote.Params, clientID, centerID *kernel.ID,
) (CreateOrderCommand, error) {
	var actorErr error
	if err := actor.Validate(); err != nil {
		actorErr = errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	q, quoteErr := quote.NewQuote(params)
	if err := errors.Join(actorErr, quoteErr); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		actor:    actor,
		quote:    q,
		clientID: clientID,
		centerID: centerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) Quote() quote.Quote {
	return c.quote
}

func (c CreateOrderCommand) ClientID() *kernel.ID {
	return c.clientID
}

func (c CreateOrderCommand) CenterID() *kernel.ID {
	return c.centerID
}
