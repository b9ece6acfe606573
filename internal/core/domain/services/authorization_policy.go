package services

import (
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// Action is a workflow or CRUD operation subject to authorization.
type Action string

const (
	ActionCreateBudget      Action = "create-budget"
	ActionUpdateBudgetDraft Action = "update-budget-draft"
	ActionViewBudget        Action = "view-budget"
	ActionSubmitBudget      Action = "submit-budget"
	ActionApproveBudget     Action = "approve-budget"
	ActionRejectBudget      Action = "reject-budget"
	ActionConvertBudget     Action = "convert-budget-to-order"
	ActionCreateOrder       Action = "create-order"
	ActionViewOrder         Action = "view-order"
	ActionSetOrderStatus    Action = "set-order-status"
	ActionDeleteOrder       Action = "delete-order"
)

// getMinimumRoles is the single table mapping every action to the lowest
// role allowed to perform it. Actions missing from the table are denied.
func getMinimumRoles() map[Action]kernel.Role {
	return map[Action]kernel.Role{
		ActionCreateBudget:      kernel.RoleUser,
		ActionUpdateBudgetDraft: kernel.RoleUser,
		ActionViewBudget:        kernel.RoleUser,
		ActionCreateOrder:       kernel.RoleUser,
		ActionViewOrder:         kernel.RoleUser,
		ActionSetOrderStatus:    kernel.RoleUser,

		ActionSubmitBudget:  kernel.RoleModerator,
		ActionApproveBudget: kernel.RoleModerator,
		ActionRejectBudget:  kernel.RoleModerator,
		ActionConvertBudget: kernel.RoleModerator,
		ActionDeleteOrder:   kernel.RoleModerator,
	}
}

// Actions lists every action the policy knows.
func Actions() []Action {
	actions := make([]Action, 0, len(getMinimumRoles()))
	for a := range getMinimumRoles() {
		actions = append(actions, a)
	}
	return actions
}

// AuthorizationPolicy decides whether a role may perform an action. It looks
// only at the role, never at the target entity or its state, and does no I/O.
//
// Example usage:
//
//	policy := NewAuthorizationPolicy()
//	if err := policy.Authorize(actor, ActionApproveBudget); err != nil {
//	    return nil, err // *errs.UnauthorizedError
//	}
type AuthorizationPolicy struct{}

func NewAuthorizationPolicy() AuthorizationPolicy {
	return AuthorizationPolicy{}
}

// CanPerform reports whether role may perform action.
func (AuthorizationPolicy) CanPerform(role kernel.Role, action Action) bool {
	minimum, ok := getMinimumRoles()[action]
	if !ok {
		return false
	}
	return role.AtLeast(minimum)
}

// MinimumRole returns the lowest role allowed to perform action.
func (AuthorizationPolicy) MinimumRole(action Action) (kernel.Role, bool) {
	minimum, ok := getMinimumRoles()[action]
	return minimum, ok
}

// Authorize checks actor against action.
//
// Returns:
//   - nil if allowed
//   - *errs.UnauthorizedError with a reason safe to show the caller otherwise,
//     including for a zero-value Actor
func (p AuthorizationPolicy) Authorize(actor kernel.Actor, action Action) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthorizedError(string(action), kernel.RoleUnknown.String(), "no verified identity")
	}
	if p.CanPerform(actor.Role(), action) {
		return nil
	}

	minimum, ok := p.MinimumRole(action)
	if !ok {
		return errs.NewUnauthorizedError(string(action), actor.Role().String(), "action is not recognised")
	}
	return errs.NewUnauthorizedError(string(action), actor.Role().String(),
		fmt.Sprintf("requires %s or higher", minimum))
}
