package repository

import (
	"time"

	"github.com/kyildiz/user-admin-api/internal/models"
)

// UserFilter holds filtering options for listing users
type UserFilter struct {
	// Search matches username, email or full name (substring).
	Search string
	// Role restricts to users holding the named role.
	Role string
	// IsActive restricts to active/inactive accounts when set.
	IsActive *bool
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user together with its role associations
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByUserName finds a user by username with roles and manager loaded
	FindByUserName(username string) (*models.User, error)

	// ExistsByUserName reports whether a username is already taken
	ExistsByUserName(username string) (bool, error)

	// ExistsByEmail reports whether an email is already taken
	ExistsByEmail(email string) (bool, error)

	// List retrieves users matching the filter, roles and manager loaded
	List(filter UserFilter) ([]models.User, error)

	// ListManagedBy lists users whose manager is the given user
	ListManagedBy(managerID uint64) ([]models.User, error)

	// FindByIDs resolves a set of user IDs
	FindByIDs(ids []uint64) ([]models.User, error)

	// FindFirstWithRole returns an arbitrary user holding the named role
	FindFirstWithRole(roleName string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// ReplaceRoles replaces the user's role set
	ReplaceRoles(user *models.User, roles []models.Role) error

	// UpdateLastLogin records a successful login
	UpdateLastLogin(id uint64, at time.Time) error

	// CountReports counts users managed by the given user
	CountReports(managerID uint64) (int64, error)

	// Delete removes a user and its task assignments atomically
	Delete(id uint64) error

	// Recent lists the newest users by creation date
	Recent(limit int) ([]models.User, error)

	// CountAll counts every user
	CountAll() (int64, error)

	// CountActive counts active users
	CountActive() (int64, error)

	// CountWithRole counts users holding the named role
	CountWithRole(roleName string) (int64, error)
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	// Create creates a new role
	Create(role *models.Role) error

	// FindByID finds a role by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Role, error)

	// FindByName finds a role by its unique name
	FindByName(name string) (*models.Role, error)

	// FindByIDs resolves a set of role IDs
	FindByIDs(ids []uint64) ([]models.Role, error)

	// List retrieves all roles with members loaded
	List() ([]models.Role, error)

	// Update persists changes to a role
	Update(role *models.Role) error

	// CountMembers counts users holding the role
	CountMembers(roleID uint64) (int64, error)

	// Delete removes a role
	Delete(id uint64) error

	// CountAll counts every role
	CountAll() (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a task and its assignments in one transaction
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByAssignee lists tasks that carry an assignment for the user
	ListByAssignee(userID uint64) ([]models.Task, error)

	// ListByManager lists tasks created by the manager
	ListByManager(managerID uint64) ([]models.Task, error)

	// CompleteAssignment marks the assignment completed, idempotently.
	// An already-completed assignment is returned unchanged.
	CompleteAssignment(taskID, userID uint64, completedAt time.Time) (*models.TaskAssignment, error)
}
