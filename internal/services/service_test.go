package services

import (
	"testing"
	"time"

	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/kyildiz/user-admin-api/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv bundles an in-memory database with the repositories the
// service tests share.
type testEnv struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	taskRepo  repository.TaskRepository
	adminRole *models.Role
	mgrRole   *models.Role
	userRole  *models.Role
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
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

	env := &testEnv{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		roleRepo: repository.NewRoleRepository(db),
		taskRepo: repository.NewTaskRepository(db),
	}
	env.adminRole = env.createRole(t, models.RoleAdmin)
	env.mgrRole = env.createRole(t, models.RoleManager)
	env.userRole = env.createRole(t, models.RoleUser)
	return env
}

func (e *testEnv) createRole(t *testing.T, name string) *models.Role {
	t.Helper()
	role := &models.Role{Name: name, Description: name + " role"}
	require.NoError(t, e.db.Create(role).Error)
	return role
}

func (e *testEnv) createUser(t *testing.T, username, password string, managerID *uint64, roles ...*models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		UserName:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
		ManagerID:    managerID,
	}
	for _, r := range roles {
		user.Roles = append(user.Roles, *r)
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createTask(t *testing.T, managerID uint64, title string, priority models.TaskPriority, dueDate *time.Time, createdDate time.Time, userIDs ...uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:               title,
		Priority:            priority,
		DueDate:             dueDate,
		AssignedByManagerID: managerID,
	}
	for _, id := range userIDs {
		task.Assignments = append(task.Assignments, models.TaskAssignment{
			UserID: id,
			Status: models.StatusPending,
		})
	}
	require.NoError(t, e.db.Create(task).Error)

	// autoCreateTime fills CreatedDate on insert; ordering tests need
	// to control it explicitly.
	require.NoError(t, e.db.Model(task).Update("created_date", createdDate).Error)
	task.CreatedDate = createdDate
	return task
}

func timePtr(tm time.Time) *time.Time {
	return &tm
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
