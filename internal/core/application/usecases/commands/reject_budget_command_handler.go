package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// RejectBudgetCommandHandler moves a submitted budget to REJECTED and appends
// the reason to its observations.
type RejectBudgetCommandHandler struct {
	transition budgetTransition
}

func NewRejectBudgetCommandHandler(uowFactory BudgetUoWFactory, metrics ports.WorkflowMetrics) RejectBudgetCommandHandler {
	return RejectBudgetCommandHandler{transition: newBudgetTransition(uowFactory, metrics)}
}

func (h RejectBudgetCommandHandler) Handle(ctx context.Context, cmd RejectBudgetCommand) (*budget.Budget, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.BudgetID(), cmd.Actor(), services.ActionRejectBudget,
		func(b *budget.Budget, at time.Time) error {
			return b.Reject(cmd.Actor(), cmd.Reason(), at)
		})
}
