package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kyildiz/user-admin-api/internal/authz"
	"github.com/kyildiz/user-admin-api/internal/constants"
	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/kyildiz/user-admin-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNotManager       = errors.New("user does not have manager privileges")
	ErrUserStillManages = errors.New("user still manages other users; reassign their reports first")
)

// UserService handles user administration.
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// List returns users matching the filter, with roles and manager loaded.
func (s *UserService) List(filter repository.UserFilter) ([]models.User, error) {
	users, err := s.userRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns a single user with roles and manager loaded.
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Roles", "Manager")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListManagedBy returns the manager and the users reporting to them.
// The manager must hold the Manager or Admin role.
func (s *UserService) ListManagedBy(managerID uint64) (*models.User, []models.User, error) {
	manager, err := s.userRepo.FindByID(managerID, "Roles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find manager: %w", err)
	}

	if !authz.CanViewManagedUsers(manager) {
		return nil, nil, ErrNotManager
	}

	users, err := s.userRepo.ListManagedBy(managerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list managed users: %w", err)
	}
	return manager, users, nil
}

// CreateUserInput represents input for the administrative create operation.
type CreateUserInput struct {
	UserName   string
	Email      string
	Password   string
	FullName   string
	Phone      string
	Department string
	ManagerID  *uint64
}

// Create creates a user with the default User role. Unlike legacy
// registration there is no fallback: the manager must be supplied.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.UserName)
	if username == "" {
		return nil, ErrUserNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if taken, err := s.userRepo.ExistsByUserName(username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, ErrDuplicateUsername
	}
	if taken, err := s.userRepo.ExistsByEmail(input.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrDuplicateEmail
	}

	if input.ManagerID == nil {
		return nil, authz.ErrUserRoleRequiresManager
	}
	candidate, err := s.findManagerCandidate(*input.ManagerID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateManagerAssignment(candidate, 0); err != nil {
		return nil, err
	}

	userRole, err := s.roleRepo.FindByName(models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load default role: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		UserName:     username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Phone:        input.Phone,
		Department:   input.Department,
		IsActive:     true,
		ManagerID:    &candidate.ID,
		Roles:        []models.Role{*userRole},
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.userRepo.FindByID(user.ID, "Roles", "Manager")
}

// UpdateUserInput represents input for updating a user. Nil field
// pointers leave the current value; a nil ManagerID clears the manager,
// which only role sets without "User" permit.
type UpdateUserInput struct {
	FullName   *string
	Email      *string
	Phone      *string
	Department *string
	IsActive   bool
	RoleIDs    []uint64
	ManagerID  *uint64
}

// Update applies profile, role and manager changes. The hierarchy
// invariant is re-checked against the resulting role set.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Roles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	user.IsActive = input.IsActive

	if len(input.RoleIDs) > 0 {
		roles, err := s.roleRepo.FindByIDs(input.RoleIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve roles: %w", err)
		}
		if err := s.userRepo.ReplaceRoles(user, roles); err != nil {
			return nil, fmt.Errorf("failed to replace roles: %w", err)
		}
		user.Roles = roles
	}

	var candidate *models.User
	if input.ManagerID != nil {
		candidate, err = s.findManagerCandidate(*input.ManagerID)
		if err != nil {
			return nil, err
		}
	}
	if err := authz.CanChangeManager(user, input.ManagerID, candidate); err != nil {
		return nil, err
	}
	user.ManagerID = input.ManagerID

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.userRepo.FindByID(user.ID, "Roles", "Manager")
}

// Delete removes a user. The user's task assignments are removed in the
// same transaction; a user who still manages others cannot be deleted.
func (s *UserService) Delete(id uint64) error {
	reports, err := s.userRepo.CountReports(id)
	if err != nil {
		return fmt.Errorf("failed to count reports: %w", err)
	}
	if reports > 0 {
		return ErrUserStillManages
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// ToggleStatus flips the user's active flag and returns the new value.
func (s *UserService) ToggleStatus(id uint64) (bool, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to find user: %w", err)
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(user); err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return user.IsActive, nil
}

func (s *UserService) findManagerCandidate(id uint64) (*models.User, error) {
	candidate, err := s.userRepo.FindByID(id, "Roles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find manager: %w", err)
	}
	return candidate, nil
}
