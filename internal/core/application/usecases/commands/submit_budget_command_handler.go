package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// SubmitBudgetCommandHandler moves a draft to SUBMITTED.
//
// Failures, in evaluation order:
//   - *errs.ObjectNotFoundError: no such budget
//   - *errs.UnauthorizedError: actor is below MODERATOR
//   - *errs.InvalidTransitionError: budget is not a draft
//   - *errs.ValueIsRequiredError: client or center missing
//   - *errs.ConflictDetectedError: a concurrent write won
type SubmitBudgetCommandHandler struct {
	transition budgetTransition
}

func NewSubmitBudgetCommandHandler(uowFactory BudgetUoWFactory, metrics ports.WorkflowMetrics) SubmitBudgetCommandHandler {
	return SubmitBudgetCommandHandler{transition: newBudgetTransition(uowFactory, metrics)}
}

func (h SubmitBudgetCommandHandler) Handle(ctx context.Context, cmd SubmitBudgetCommand) (*budget.Budget, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.BudgetID(), cmd.Actor(), services.ActionSubmitBudget,
		func(b *budget.Budget, at time.Time) error {
			return b.Submit(cmd.Actor(), at)
		})
}
