package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kyildiz/user-admin-api/internal/authz"
	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/kyildiz/user-admin-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound     = errors.New("role not found")
	ErrRoleNameTaken    = errors.New("role name already exists")
	ErrRoleInUse        = errors.New("role is assigned to users and cannot be deleted")
	ErrRoleNameRequired = errors.New("role name is required")
)

// RoleService handles role administration.
type RoleService struct {
	roleRepo repository.RoleRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// List returns all roles with their members loaded.
func (s *RoleService) List() ([]models.Role, error) {
	roles, err := s.roleRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// Get returns a role with its members loaded.
func (s *RoleService) Get(id uint64) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(id, "Users")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return role, nil
}

// Create creates a role with a unique name.
func (s *RoleService) Create(name, description string) (*models.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoleNameRequired
	}

	if err := s.ensureNameFree(name, 0); err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:        name,
		Description: description,
	}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

// Update renames or re-describes a role; the name stays unique.
func (s *RoleService) Update(id uint64, name, description string) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoleNameRequired
	}
	if err := s.ensureNameFree(name, role.ID); err != nil {
		return nil, err
	}

	role.Name = name
	role.Description = description
	if err := s.roleRepo.Update(role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return role, nil
}

// Delete removes a role that has no members.
func (s *RoleService) Delete(id uint64) error {
	if _, err := s.roleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("failed to find role: %w", err)
	}

	members, err := s.roleRepo.CountMembers(id)
	if err != nil {
		return fmt.Errorf("failed to count role members: %w", err)
	}
	if !authz.CanDeleteRole(members) {
		return ErrRoleInUse
	}

	if err := s.roleRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

func (s *RoleService) ensureNameFree(name string, selfID uint64) error {
	existing, err := s.roleRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check role name: %w", err)
	}
	if existing.ID != selfID {
		return ErrRoleNameTaken
	}
	return nil
}
