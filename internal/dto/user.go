// Package dto shapes API responses. JSON keys keep the PascalCase form
// the existing frontend was built against.
package dto

import (
	"time"

	"github.com/kyildiz/user-admin-api/internal/models"
)

// RoleDTO represents a role in API responses
type RoleDTO struct {
	ID          uint64 `json:"Id"`
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            uint64     `json:"Id"`
	UserName      string     `json:"UserName"`
	Email         string     `json:"Email"`
	FullName      string     `json:"FullName"`
	Phone         string     `json:"Phone"`
	Department    string     `json:"Department"`
	IsActive      bool       `json:"IsActive"`
	CreatedDate   time.Time  `json:"CreatedDate"`
	LastLoginDate *time.Time `json:"LastLoginDate"`
	ManagerID     *uint64    `json:"ManagerId"`
	ManagerName   *string    `json:"ManagerName"`
	Roles         []RoleDTO  `json:"Roles"`
}

// RoleWithMembersDTO represents a role with membership details
type RoleWithMembersDTO struct {
	ID          uint64          `json:"Id"`
	Name        string          `json:"Name"`
	Description string          `json:"Description"`
	UserCount   int             `json:"UserCount"`
	Users       []RoleMemberDTO `json:"Users,omitempty"`
}

// RoleMemberDTO is the compact user shape inside role responses
type RoleMemberDTO struct {
	ID       uint64 `json:"Id"`
	UserName string `json:"UserName"`
	Email    string `json:"Email"`
	FullName string `json:"FullName"`
}

// DashboardStatsDTO carries the dashboard counters
type DashboardStatsDTO struct {
	TotalUsers  int64 `json:"TotalUsers"`
	ActiveUsers int64 `json:"ActiveUsers"`
	AdminCount  int64 `json:"AdminCount"`
	TotalRoles  int64 `json:"TotalRoles"`
}

// ToRoleDTO converts a Role model to RoleDTO
func ToRoleDTO(role models.Role) RoleDTO {
	return RoleDTO{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
	}
}

// ToUserDTO converts a User model to UserDTO. Manager display name
// resolution follows the system-wide rule: full name if set, else
// username.
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:            user.ID,
		UserName:      user.UserName,
		Email:         user.Email,
		FullName:      user.FullName,
		Phone:         user.Phone,
		Department:    user.Department,
		IsActive:      user.IsActive,
		CreatedDate:   user.CreatedDate,
		LastLoginDate: user.LastLoginDate,
		ManagerID:     user.ManagerID,
	}

	if user.Manager != nil {
		name := user.Manager.DisplayName()
		dto.ManagerName = &name
	}

	dto.Roles = make([]RoleDTO, len(user.Roles))
	for i, role := range user.Roles {
		dto.Roles[i] = ToRoleDTO(role)
	}

	return dto
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

// ToRoleWithMembersDTO converts a Role with preloaded users
func ToRoleWithMembersDTO(role models.Role, includeUsers bool) RoleWithMembersDTO {
	dto := RoleWithMembersDTO{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		UserCount:   len(role.Users),
	}
	if includeUsers {
		dto.Users = make([]RoleMemberDTO, len(role.Users))
		for i, u := range role.Users {
			dto.Users[i] = RoleMemberDTO{
				ID:       u.ID,
				UserName: u.UserName,
				Email:    u.Email,
				FullName: u.FullName,
			}
		}
	}
	return dto
}
