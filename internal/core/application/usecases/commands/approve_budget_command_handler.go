package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// ApproveBudgetCommandHandler moves a submitted budget to APPROVED.
// Of two concurrent approve/reject calls on the same budget, the second one
// waits for the row lock and then fails with *errs.InvalidTransitionError.
type ApproveBudgetCommandHandler struct {
	transition budgetTransition
}

func NewApproveBudgetCommandHandler(uowFactory BudgetUoWFactory, metrics ports.WorkflowMetrics) ApproveBudgetCommandHandler {
	return ApproveBudgetCommandHandler{transition: newBudgetTransition(uowFactory, metrics)}
}

func (h ApproveBudgetCommandHandler) Handle(ctx context.Context, cmd ApproveBudgetCommand) (*budget.Budget, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.BudgetID(), cmd.Actor(), services.ActionApproveBudget,
		func(b *budget.Budget, at time.Time) error {
			return b.Approve(cmd.Actor(), at)
		})
}
