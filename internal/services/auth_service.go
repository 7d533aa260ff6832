package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kyildiz/user-admin-api/internal/authz"
	"github.com/kyildiz/user-admin-api/internal/constants"
	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/kyildiz/user-admin-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrUserNameRequired     = errors.New("username is required")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication and self-registration.
type AuthService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	UserName string
	Password string
}

// LoginResult carries the authenticated user and an opaque API token.
type LoginResult struct {
	User  *models.User
	Token string
}

// Login verifies credentials, requires an active account and records
// the login time.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUserName(input.UserName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginDate = &now

	return &LoginResult{
		User:  user,
		Token: uuid.NewString(),
	}, nil
}

// RegisterInput represents the required information for self-registration.
type RegisterInput struct {
	UserName   string
	Email      string
	Password   string
	FullName   string
	Phone      string
	Department string
	ManagerID  *uint64

	// AllowDefaultManager enables the legacy fallback that picks an
	// arbitrary Manager-role user when no manager is supplied.
	// Deprecated: callers should supply ManagerID explicitly.
	AllowDefaultManager bool
}

// Register creates a new account with the User role. New accounts must
// reference a valid manager; the legacy default-manager fallback only
// runs when explicitly requested.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
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

	managerID, err := s.resolveManager(input)
	if err != nil {
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
		ManagerID:    managerID,
		Roles:        []models.Role{*userRole},
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.userRepo.FindByID(user.ID, "Roles", "Manager")
}

func (s *AuthService) resolveManager(input RegisterInput) (*uint64, error) {
	if input.ManagerID != nil {
		candidate, err := s.loadManagerCandidate(*input.ManagerID)
		if err != nil {
			return nil, err
		}
		if err := authz.ValidateManagerAssignment(candidate, 0); err != nil {
			return nil, err
		}
		return &candidate.ID, nil
	}

	if input.AllowDefaultManager {
		fallback, err := s.userRepo.FindFirstWithRole(models.RoleManager)
		if err == nil {
			return &fallback.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find fallback manager: %w", err)
		}
	}

	// Registration always grants the User role, so the account cannot
	// be left without a manager.
	return nil, authz.ErrUserRoleRequiresManager
}

func (s *AuthService) loadManagerCandidate(id uint64) (*models.User, error) {
	candidate, err := s.userRepo.FindByID(id, "Roles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find manager: %w", err)
	}
	return candidate, nil
}
