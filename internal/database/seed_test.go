package database

import (
	"testing"

	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})
	return db
}

func TestSeed(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, Seed(db))

	var roles []models.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	require.Len(t, roles, 3)
	assert.Equal(t, models.RoleAdmin, roles[0].Name)
	assert.Equal(t, models.RoleManager, roles[1].Name)
	assert.Equal(t, models.RoleUser, roles[2].Name)

	var admin models.User
	require.NoError(t, db.Preload("Roles").Where("user_name = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsActive)
	require.Len(t, admin.Roles, 1)
	assert.Equal(t, models.RoleAdmin, admin.Roles[0].Name)

	err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123"))
	assert.NoError(t, err)
}

func TestSeed_Idempotent(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var roleCount, userCount int64
	require.NoError(t, db.Model(&models.Role{}).Count(&roleCount).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 3, roleCount)
	assert.EqualValues(t, 1, userCount)
}
