package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kyildiz/user-admin-api/internal/authz"
	"github.com/kyildiz/user-admin-api/internal/dto"
	apierrors "github.com/kyildiz/user-admin-api/internal/errors"
	"github.com/kyildiz/user-admin-api/internal/repository"
	"github.com/kyildiz/user-admin-api/internal/services"
)

// UserHandler coordinates user administration HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns users, optionally filtered by search text, role
// name and active status.
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	if isActiveStr := c.Query("is_active"); isActiveStr != "" {
		isActive, err := strconv.ParseBool(isActiveStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid is_active value")
			return
		}
		filter.IsActive = &isActive
	}

	users, err := h.userService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns a single user.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetManagedUsers returns the users reporting to a manager.
func (h *UserHandler) GetManagedUsers(c *gin.Context) {
	managerID, ok := parseIDParam(c, "manager_id")
	if !ok {
		return
	}

	_, users, err := h.userService.ListManagedBy(managerID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// CreateUser creates a user under an explicit manager.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		UserName   string  `json:"UserName" binding:"required,min=3,max=100"`
		Email      string  `json:"Email" binding:"required,email"`
		Password   string  `json:"Password" binding:"required"`
		FullName   string  `json:"FullName"`
		Phone      string  `json:"Phone"`
		Department string  `json:"Department"`
		ManagerID  *uint64 `json:"ManagerId"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		UserName:   req.UserName,
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Department: req.Department,
		ManagerID:  req.ManagerID,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"Success": true,
		"Message": "User created successfully",
		"UserId":  user.ID,
	})
}

// UpdateUser applies profile, role and manager changes.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		FullName   *string  `json:"FullName"`
		Email      *string  `json:"Email"`
		Phone      *string  `json:"Phone"`
		Department *string  `json:"Department"`
		IsActive   bool     `json:"IsActive"`
		RoleIDs    []uint64 `json:"RoleIds"`
		ManagerID  *uint64  `json:"ManagerId"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, services.UpdateUserInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		IsActive:   req.IsActive,
		RoleIDs:    req.RoleIDs,
		ManagerID:  req.ManagerID,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Success": true,
		"Message": "User updated successfully",
		"User":    dto.ToUserDTO(*user),
	})
}

// DeleteUser removes a user.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Success": true,
		"Message": "User deleted successfully",
	})
}

// ToggleUserStatus flips the user's active flag.
func (h *UserHandler) ToggleUserStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	isActive, err := h.userService.ToggleStatus(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Success":  true,
		"Message":  "User status changed",
		"IsActive": isActive,
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotManager):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateEmail):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserStillManages):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrUserNameRequired),
		errors.Is(err, authz.ErrInvalidManager),
		errors.Is(err, authz.ErrSelfManagement),
		errors.Is(err, authz.ErrUserRoleRequiresManager):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// parseIDParam parses a numeric URL parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
