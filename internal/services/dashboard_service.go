package services

import (
	"fmt"

	"github.com/kyildiz/user-admin-api/internal/constants"
	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/kyildiz/user-admin-api/internal/repository"
)

// DashboardStats aggregates the admin dashboard counters.
type DashboardStats struct {
	TotalUsers  int64
	ActiveUsers int64
	AdminCount  int64
	TotalRoles  int64
}

// DashboardService computes overview data for the admin dashboard.
type DashboardService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *DashboardService {
	return &DashboardService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// Stats returns the dashboard counters.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	active, err := s.userRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}
	admins, err := s.userRepo.CountWithRole(models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	roles, err := s.roleRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("failed to count roles: %w", err)
	}

	return &DashboardStats{
		TotalUsers:  total,
		ActiveUsers: active,
		AdminCount:  admins,
		TotalRoles:  roles,
	}, nil
}

// RecentUsers returns the newest accounts by creation date.
func (s *DashboardService) RecentUsers(count int) ([]models.User, error) {
	if count <= 0 {
		count = constants.DefaultRecentUserCount
	}
	users, err := s.userRepo.Recent(count)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}
	return users, nil
}
