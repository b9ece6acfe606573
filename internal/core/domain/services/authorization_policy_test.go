package services_test

import (
	"testing"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationPolicy_CanPerform(t *testing.T) {
	policy := services.NewAuthorizationPolicy()

	moderatorOnly := map[services.Action]bool{
		services.ActionSubmitBudget:  true,
		services.ActionApproveBudget: true,
		services.ActionRejectBudget:  true,
		services.ActionConvertBudget: true,
		services.ActionDeleteOrder:   true,
	}

	for _, action := range services.Actions() {
		t.Run(string(action), func(t *testing.T) {
			assert.Equal(t, !moderatorOnly[action], policy.CanPerform(kernel.RoleUser, action))
			assert.True(t, policy.CanPerform(kernel.RoleModerator, action))
			assert.True(t, policy.CanPerform(kernel.RoleAdmin, action))
			assert.False(t, policy.CanPerform(kernel.RoleUnknown, action))
		})
	}

	t.Run("unknown action is denied", func(t *testing.T) {
		assert.False(t, policy.CanPerform(kernel.RoleAdmin, "drop-database"))
	})

	t.Run("table covers every action", func(t *testing.T) {
		assert.Len(t, services.Actions(), 11)
	})
}

func TestAuthorizationPolicy_Authorize(t *testing.T) {
	policy := services.NewAuthorizationPolicy()
	user, err := kernel.NewActor(1, kernel.RoleUser)
	require.NoError(t, err)
	admin, err := kernel.NewActor(2, kernel.RoleAdmin)
	require.NoError(t, err)

	t.Run("user cannot approve", func(t *testing.T) {
		err := policy.Authorize(user, services.ActionApproveBudget)

		var unauthorized *errs.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, "USER", unauthorized.Role)
		assert.Equal(t, "approve-budget", unauthorized.Action)
		assert.Equal(t, "requires MODERATOR or higher", unauthorized.Reason)
		assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))
	})

	t.Run("user can create drafts", func(t *testing.T) {
		require.NoError(t, policy.Authorize(user, services.ActionCreateBudget))
	})

	t.Run("admin can convert", func(t *testing.T) {
		require.NoError(t, policy.Authorize(admin, services.ActionConvertBudget))
	})

	t.Run("zero actor", func(t *testing.T) {
		err := policy.Authorize(kernel.Actor{}, services.ActionViewBudget)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("unknown action", func(t *testing.T) {
		err := policy.Authorize(admin, "drop-database")

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Contains(t, err.Error(), "not recognised")
	})
}
