package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/budget"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// UpdateBudgetDraftCommandHandler edits a budget while it is still a draft.
// Any authenticated actor may edit; a budget past DRAFT fails with
// *errs.InvalidTransitionError.
type UpdateBudgetDraftCommandHandler struct {
	transition budgetTransition
}

func NewUpdateBudgetDraftCommandHandler(
	uowFactory BudgetUoWFactory, metrics ports.WorkflowMetrics,
) UpdateBudgetDraftCommandHandler {
	return UpdateBudgetDraftCommandHandler{transition: newBudgetTransition(uowFactory, metrics)}
}

func (h UpdateBudgetDraftCommandHandler) Handle(
	ctx context.Context, cmd UpdateBudgetDraftCommand,
) (*budget.Budget, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.run(ctx, cmd.BudgetID(), cmd.Actor(), services.ActionUpdateBudgetDraft,
		func(b *budget.Budget, at time.Time) error {
			return b.UpdateDraft(cmd.Draft(), at)
		})
}
