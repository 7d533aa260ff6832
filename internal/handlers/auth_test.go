package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/kyildiz/user-admin-api/internal/constants"
	"github.com/kyildiz/user-admin-api/internal/database"
	"github.com/kyildiz/user-admin-api/internal/dto"
	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/kyildiz/user-admin-api/internal/repository"
	"github.com/kyildiz/user-admin-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	managerID   uint64
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
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

	database.SetDB(db)

	for _, name := range []string{models.RoleAdmin, models.RoleManager, models.RoleUser} {
		require.NoError(t, db.Create(&models.Role{Name: name}).Error)
	}

	var mgrRole models.Role
	require.NoError(t, db.Where("name = ?", models.RoleManager).First(&mgrRole).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("bosspass1"), bcrypt.MinCost)
	require.NoError(t, err)
	manager := &models.User{
		UserName:     "boss",
		Email:        "boss@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
		Roles:        []models.Role{mgrRole},
	}
	require.NoError(t, db.Create(manager).Error)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	authService := services.NewAuthService(userRepo, roleRepo)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		managerID:   manager.ID,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/login", env.handler.Login)
	r.POST("/api/auth/register", env.handler.Register)
	r.POST("/api/auth/logout", env.handler.Logout)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/register", map[string]interface{}{
		"UserName":  "newuser",
		"Email":     "newuser@example.com",
		"Password":  "supersecret",
		"FullName":  "New User",
		"ManagerId": env.managerID,
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success bool
		User    dto.UserDTO
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.Equal(t, "newuser", response.User.UserName)
	require.NotNil(t, response.User.ManagerID)
	require.Equal(t, env.managerID, *response.User.ManagerID)
	require.Len(t, response.User.Roles, 1)
	require.Equal(t, models.RoleUser, response.User.Roles[0].Name)
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	payload := map[string]interface{}{
		"UserName":  "newuser",
		"Email":     "newuser@example.com",
		"Password":  "supersecret",
		"ManagerId": env.managerID,
	}

	w := postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["Email"] = "second@example.com"
	w = postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "CONFLICT", response["code"])
}

func TestAuthHandler_Register_WithoutManager(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/register", map[string]interface{}{
		"UserName": "orphan",
		"Email":    "orphan@example.com",
		"Password": "supersecret",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/login", map[string]interface{}{
		"UserName": "boss",
		"Password": "bosspass1",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool
		Token   string
		User    dto.UserDTO
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.NotEmpty(t, response.Token)
	require.Equal(t, "boss", response.User.UserName)
	require.NotNil(t, response.User.LastLoginDate)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/login", map[string]interface{}{
		"UserName": "boss",
		"Password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "INVALID_CREDENTIALS", response["code"])
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/logout", map[string]interface{}{})

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, true, response["Success"])
}
