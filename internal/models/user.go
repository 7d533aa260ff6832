package models

import (
	"strings"
	"time"
)

// Role names are fixed at seed time; the rest of the system compares
// against these constants rather than role IDs.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

type User struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	UserName      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"user_name"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"type:varchar(255);not null" json:"-"`
	FullName      string     `gorm:"type:varchar(100)" json:"full_name"`
	Phone         string     `gorm:"type:varchar(20)" json:"phone"`
	Department    string     `gorm:"type:varchar(100)" json:"department"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedDate   time.Time  `gorm:"autoCreateTime" json:"created_date"`
	LastLoginDate *time.Time `json:"last_login_date"`
	ManagerID     *uint64    `json:"manager_id"`

	// Relations
	Manager     *User            `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Roles       []Role           `gorm:"many2many:user_roles" json:"roles,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
}

// HasRole reports whether the user's loaded role set contains the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// IsManagerOrAdmin reports whether the user may act as a manager.
func (u *User) IsManagerOrAdmin() bool {
	return u.HasRole(RoleManager) || u.HasRole(RoleAdmin)
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// DisplayName returns the full name when set, otherwise the username.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.UserName
}
