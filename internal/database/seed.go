package database

import (
	"fmt"
	"log"

	"github.com/kyildiz/user-admin-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts the fixed role set and a bootstrap admin account on an
// empty database. Running it again is a no-op.
func Seed(db *gorm.DB) error {
	var roleCount int64
	if err := db.Model(&models.Role{}).Count(&roleCount).Error; err != nil {
		return fmt.Errorf("failed to inspect roles: %w", err)
	}
	if roleCount > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		roles := []models.Role{
			{Name: models.RoleAdmin, Description: "System administrator"},
			{Name: models.RoleManager, Description: "Team manager"},
			{Name: models.RoleUser, Description: "Regular user"},
		}
		if err := tx.Create(&roles).Error; err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash bootstrap password: %w", err)
		}

		admin := models.User{
			UserName:     "admin",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			FullName:     "Admin User",
			Phone:        "555-0000",
			Department:   "IT",
			IsActive:     true,
			Roles:        []models.Role{roles[0]},
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}

		log.Println("Seeded roles and bootstrap admin account")
		return nil
	})
}
