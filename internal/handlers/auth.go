package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/kyildiz/user-admin-api/internal/authz"
	"github.com/kyildiz/user-admin-api/internal/constants"
	"github.com/kyildiz/user-admin-api/internal/dto"
	apierrors "github.com/kyildiz/user-admin-api/internal/errors"
	"github.com/kyildiz/user-admin-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user, initializes the session and returns the
// user together with an opaque token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		UserName string `json:"UserName" binding:"required"`
		Password string `json:"Password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.RespondWithError(c, http.StatusUnauthorized,
				apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, result.User.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Success": true,
		"Message": "Login successful",
		"Token":   result.Token,
		"User":    dto.ToUserDTO(*result.User),
	})
}

// Register creates a new account with the User role.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		UserName   string  `json:"UserName" binding:"required,min=3,max=100"`
		Email      string  `json:"Email" binding:"required,email"`
		Password   string  `json:"Password" binding:"required"`
		FullName   string  `json:"FullName"`
		Phone      string  `json:"Phone"`
		Department string  `json:"Department"`
		ManagerID  *uint64 `json:"ManagerId"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		UserName:   req.UserName,
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Department: req.Department,
		ManagerID:  req.ManagerID,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"Success": true,
		"Message": "User registered successfully",
		"User":    dto.ToUserDTO(*user),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Success": true,
		"Message": "Logged out successfully",
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUserNameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateEmail):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, authz.ErrInvalidManager),
		errors.Is(err, authz.ErrSelfManagement),
		errors.Is(err, authz.ErrUserRoleRequiresManager):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
