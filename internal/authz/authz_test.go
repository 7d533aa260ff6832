package authz

import (
	"errors"
	"testing"

	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userWithRoles(id uint64, managerID *uint64, roleNames ...string) models.User {
	roles := make([]models.Role, len(roleNames))
	for i, name := range roleNames {
		roles[i] = models.Role{ID: uint64(i + 1), Name: name}
	}
	return models.User{
		ID:        id,
		UserName:  "user",
		ManagerID: managerID,
		Roles:     roles,
	}
}

func TestCanManageUsers(t *testing.T) {
	admin := userWithRoles(1, nil, models.RoleAdmin)
	manager := userWithRoles(2, nil, models.RoleManager)
	regular := userWithRoles(3, nil, models.RoleUser)

	assert.True(t, CanManageUsers(&admin))
	assert.False(t, CanManageUsers(&manager))
	assert.False(t, CanManageUsers(&regular))

	assert.True(t, CanViewManagedUsers(&admin))
	assert.True(t, CanViewManagedUsers(&manager))
	assert.False(t, CanViewManagedUsers(&regular))
}

func TestValidateManagerAssignment(t *testing.T) {
	manager := userWithRoles(2, nil, models.RoleManager)
	regular := userWithRoles(3, nil, models.RoleUser)

	require.NoError(t, ValidateManagerAssignment(&manager, 5))

	err := ValidateManagerAssignment(nil, 5)
	assert.ErrorIs(t, err, ErrInvalidManager)

	err = ValidateManagerAssignment(&regular, 5)
	assert.ErrorIs(t, err, ErrInvalidManager)

	err = ValidateManagerAssignment(&manager, manager.ID)
	assert.ErrorIs(t, err, ErrSelfManagement)
}

func TestCanChangeManager_ClearingManager(t *testing.T) {
	manager := userWithRoles(2, nil, models.RoleManager)
	regular := userWithRoles(3, nil, models.RoleUser)

	// A User-role account cannot lose its manager.
	err := CanChangeManager(&regular, nil, nil)
	assert.ErrorIs(t, err, ErrUserRoleRequiresManager)

	// Accounts without the User role may go managerless.
	require.NoError(t, CanChangeManager(&manager, nil, nil))
}

func TestCanAssignTask(t *testing.T) {
	managerID := uint64(2)
	otherManagerID := uint64(5)

	admin := userWithRoles(1, nil, models.RoleAdmin)
	manager := userWithRoles(managerID, nil, models.RoleManager)
	otherManager := userWithRoles(otherManagerID, nil, models.RoleManager)
	regular := userWithRoles(9, nil, models.RoleUser)

	ownReport := userWithRoles(3, &managerID, models.RoleUser)
	foreignReport := userWithRoles(4, &otherManagerID, models.RoleUser)
	foreignReport.UserName = "foreign"

	// Admin targets anyone.
	require.NoError(t, CanAssignTask(&admin, []models.User{ownReport, foreignReport}))

	// Manager targets only own reports.
	require.NoError(t, CanAssignTask(&manager, []models.User{ownReport}))

	err := CanAssignTask(&manager, []models.User{ownReport, foreignReport})
	require.ErrorIs(t, err, ErrUnauthorizedAssignment)
	assert.Contains(t, err.Error(), "foreign")

	err = CanAssignTask(&otherManager, []models.User{ownReport})
	assert.ErrorIs(t, err, ErrUnauthorizedAssignment)

	// Non-managers cannot assign at all.
	err = CanAssignTask(&regular, []models.User{ownReport})
	assert.ErrorIs(t, err, ErrInvalidManager)
}

func TestCanDeleteRole(t *testing.T) {
	assert.True(t, CanDeleteRole(0))
	assert.False(t, CanDeleteRole(1))
	assert.False(t, CanDeleteRole(42))
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrInvalidManager,
		ErrSelfManagement,
		ErrUserRoleRequiresManager,
		ErrUnauthorizedAssignment,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b))
		}
	}
}
