package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one order.
type GetOrderQuery struct {
	orderID kernel.ID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.ID, actor kernel.Actor) (GetOrderQuery, error) {
	var problems []error
	if err := orderID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	if err := errors.Join(problems...); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// GetOrderQueryResponse is an order as stored.
type GetOrderQueryResponse struct {
	ID          kernel.ID
	Number      string
	Type        string
	BudgetID    *kernel.ID
	Status      string
	ClientID    *kernel.ID
	CenterID    *kernel.ID
	Quote       QuoteResponse
	CreatedByID kernel.ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
}
