package services

import (
	"testing"

	"github.com/kyildiz/user-admin-api/internal/authz"
	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)
	env.createUser(t, "alice", "secret123", &manager.ID, env.userRole)

	result, err := svc.Login(LoginInput{UserName: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.UserName)
	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.User.LastLoginDate)

	// The login time is persisted, not just echoed.
	var stored models.User
	require.NoError(t, env.db.Where("user_name = ?", "alice").First(&stored).Error)
	assert.NotNil(t, stored.LastLoginDate)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)
	env.createUser(t, "alice", "secret123", &manager.ID, env.userRole)

	_, err := svc.Login(LoginInput{UserName: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	_, err := svc.Login(LoginInput{UserName: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)
	alice := env.createUser(t, "alice", "secret123", &manager.ID, env.userRole)
	require.NoError(t, env.db.Model(alice).Update("is_active", false).Error)

	_, err := svc.Login(LoginInput{UserName: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_WithExplicitManager(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)

	user, err := svc.Register(RegisterInput{
		UserName:  "bob",
		Email:     "bob@example.com",
		Password:  "secret123",
		FullName:  "Bob Smith",
		ManagerID: &manager.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, user.ManagerID)
	assert.Equal(t, manager.ID, *user.ManagerID)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, models.RoleUser, user.Roles[0].Name)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegister_WithoutManagerFails(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	env.createUser(t, "manager", "password", nil, env.mgrRole)

	_, err := svc.Register(RegisterInput{
		UserName: "bob",
		Email:    "bob@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, authz.ErrUserRoleRequiresManager)
}

// The automatic fallback to an arbitrary Manager-role user is legacy
// behavior and must be requested explicitly.
func TestRegister_DefaultManagerFallbackIsOptIn(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)

	user, err := svc.Register(RegisterInput{
		UserName:            "bob",
		Email:               "bob@example.com",
		Password:            "secret123",
		AllowDefaultManager: true,
	})
	require.NoError(t, err)
	require.NotNil(t, user.ManagerID)
	assert.Equal(t, manager.ID, *user.ManagerID)
}

func TestRegister_DefaultManagerFallbackWithNoManagers(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	_, err := svc.Register(RegisterInput{
		UserName:            "bob",
		Email:               "bob@example.com",
		Password:            "secret123",
		AllowDefaultManager: true,
	})
	assert.ErrorIs(t, err, authz.ErrUserRoleRequiresManager)
}

func TestRegister_ManagerMustHoldManagerRole(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)
	regular := env.createUser(t, "regular", "password", &manager.ID, env.userRole)

	_, err := svc.Register(RegisterInput{
		UserName:  "bob",
		Email:     "bob@example.com",
		Password:  "secret123",
		ManagerID: &regular.ID,
	})
	assert.ErrorIs(t, err, authz.ErrInvalidManager)

	_, err = svc.Register(RegisterInput{
		UserName:  "bob",
		Email:     "bob@example.com",
		Password:  "secret123",
		ManagerID: uint64Ptr(9999),
	})
	assert.ErrorIs(t, err, authz.ErrInvalidManager)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.userRepo, env.roleRepo)

	manager := env.createUser(t, "manager", "password", nil, env.mgrRole)
	env.createUser(t, "alice", "secret123", &manager.ID, env.userRole)

	_, err := svc.Register(RegisterInput{
		UserName:  "  ",
		Email:     "blank@example.com",
		Password:  "secret123",
		ManagerID: &manager.ID,
	})
	assert.ErrorIs(t, err, ErrUserNameRequired)

	_, err = svc.Register(RegisterInput{
		UserName:  "bob",
		Email:     "bob@example.com",
		Password:  "short",
		ManagerID: &manager.ID,
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(RegisterInput{
		UserName:  "alice",
		Email:     "new@example.com",
		Password:  "secret123",
		ManagerID: &manager.ID,
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = svc.Register(RegisterInput{
		UserName:  "bob",
		Email:     "alice@example.com",
		Password:  "secret123",
		ManagerID: &manager.ID,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}
