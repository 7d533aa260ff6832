// Package authz holds every role and hierarchy rule in one place, as
// pure decision functions over already-loaded models. Callers resolve
// the involved users (with roles preloaded) and pass them in; nothing
// here touches the database.
package authz

import (
	"errors"
	"fmt"

	"github.com/kyildiz/user-admin-api/internal/models"
)

var (
	// ErrInvalidManager is returned when a manager candidate does not
	// exist or lacks the Manager/Admin role.
	ErrInvalidManager = errors.New("selected user cannot act as a manager")
	// ErrSelfManagement is returned when a user would become their own manager.
	ErrSelfManagement = errors.New("a user cannot be their own manager")
	// ErrUserRoleRequiresManager is returned when a User-role account
	// would end up without a manager.
	ErrUserRoleRequiresManager = errors.New("users with the User role must have a manager")
	// ErrUnauthorizedAssignment is returned when a manager targets a
	// user outside their own reports.
	ErrUnauthorizedAssignment = errors.New("managers may only assign tasks to their own reports")
)

// CanManageUsers reports whether the actor may perform full user CRUD.
func CanManageUsers(actor *models.User) bool {
	return actor.IsAdmin()
}

// CanViewManagedUsers reports whether the actor may list a manager's reports.
func CanViewManagedUsers(actor *models.User) bool {
	return actor.IsManagerOrAdmin()
}

// CanDeleteRole reports whether a role with the given membership may be
// deleted. Roles in use must be unassigned first.
func CanDeleteRole(memberCount int64) bool {
	return memberCount == 0
}

// ValidateManagerAssignment checks that candidate may become the manager
// of the subject. The candidate is nil when the referenced user does not
// exist.
func ValidateManagerAssignment(candidate *models.User, subjectID uint64) error {
	if candidate == nil || !candidate.IsManagerOrAdmin() {
		return ErrInvalidManager
	}
	if candidate.ID == subjectID {
		return ErrSelfManagement
	}
	return nil
}

// CanChangeManager validates a manager change for subject. A nil
// newManagerID clears the manager, which is only allowed for accounts
// that do not hold the User role.
func CanChangeManager(subject *models.User, newManagerID *uint64, candidate *models.User) error {
	if newManagerID == nil {
		if subject.HasRole(models.RoleUser) {
			return ErrUserRoleRequiresManager
		}
		return nil
	}
	return ValidateManagerAssignment(candidate, subject.ID)
}

// CanAssignTask checks that the actor may create a task targeting every
// user in targets. Admins may target anyone; managers only users whose
// ManagerID is the actor. The error names the first offending user.
func CanAssignTask(actor *models.User, targets []models.User) error {
	if !actor.IsManagerOrAdmin() {
		return ErrInvalidManager
	}
	if actor.IsAdmin() {
		return nil
	}
	for _, target := range targets {
		if target.ManagerID == nil || *target.ManagerID != actor.ID {
			return fmt.Errorf("%w: %s", ErrUnauthorizedAssignment, target.UserName)
		}
	}
	return nil
}
