package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	ErrGetBudgetQueryIsNotConstructed = errors.New(
		"GetBudgetQuery must be created via NewGetBudgetQuery constructor",
	)
)

// GetBudgetQuery reads one budget with its audit trail.
//
// Example:
//
//	query, err := NewGetBudgetQuery(budgetID, actor)
//	if err != nil {
//	    return err
//	}
//	b, err := handler.Handle(ctx, query)
type GetBudgetQuery struct {
	budgetID kernel.ID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetBudgetQuery(budgetID kernel.ID, actor kernel.Actor) (GetBudgetQuery, error) {
	var problems []error
	if err := budgetID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("budgetId", err))
	}
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	if err := errors.Join(problems...); err != nil {
		return GetBudgetQuery{}, err
	}

	return GetBudgetQuery{budgetID: budgetID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBudgetQuery) Validate() error {
	return q.guard.Validate(ErrGetBudgetQueryIsNotConstructed)
}

func (q GetBudgetQuery) BudgetID() kernel.ID {
	return q.budgetID
}

func (q GetBudgetQuery) Actor() kernel.Actor {
	return q.actor
}

// GetBudgetQueryResponse is a budget as stored.
type GetBudgetQueryResponse struct {
	ID           kernel.ID
	Reference    string
	OrderNumber  *string
	Status       string
	ClientID     *kernel.ID
	CenterID     *kernel.ID
	Quote        QuoteResponse
	Observations string

	CreatedByID   kernel.ID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SubmittedAt   *time.Time
	SubmittedByID *kernel.ID
	ApprovedAt    *time.Time
	ApprovedByID  *kernel.ID
	RejectedAt    *time.Time
	RejectedByID  *kernel.ID
	ConvertedAt   *time.Time
	ConvertedByID *kernel.ID
	OrderID       *kernel.ID
	Version       int64
}
