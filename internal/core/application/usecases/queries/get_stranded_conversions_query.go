package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	ErrGetStrandedConversionsQueryIsNotConstructed = errors.New(
		"GetStrandedConversionsQuery must be created via NewGetStrandedConversionsQuery constructor",
	)
)

// GetStrandedConversionsQuery lists conversions that reserved an order number
// but never created the order: APPROVED budgets holding an order number with
// no order pointing back at them. Retrying the conversion finishes them with
// the same number.
//
// Example:
//
//	query, _ := NewGetStrandedConversionsQuery(actor, 10*time.Minute)
//	stranded, err := handler.Handle(ctx, query)
//	for _, s := range stranded {
//	    fmt.Printf("budget %s holds %s\n", s.BudgetID, s.OrderNumber)
//	}
type GetStrandedConversionsQuery struct {
	actor     kernel.Actor
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewGetStrandedConversionsQuery skips budgets touched within olderThan, so
// conversions still in flight are not reported. Zero reports every one.
func NewGetStrandedConversionsQuery(actor kernel.Actor, olderThan time.Duration) (GetStrandedConversionsQuery, error) {
	var problems []error
	if err := actor.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("actor", err))
	}
	if olderThan < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("olderThan", olderThan, time.Duration(0), "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return GetStrandedConversionsQuery{}, err
	}

	return GetStrandedConversionsQuery{actor: actor, olderThan: olderThan, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStrandedConversionsQuery) Validate() error {
	return q.guard.Validate(ErrGetStrandedConversionsQueryIsNotConstructed)
}

func (q GetStrandedConversionsQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetStrandedConversionsQuery) OlderThan() time.Duration {
	return q.olderThan
}

// GetStrandedConversionsQueryResponse is one stranded conversion.
type GetStrandedConversionsQueryResponse struct {
	BudgetID    kernel.ID
	Reference   string
	OrderNumber string
	UpdatedAt   time.Time
}
