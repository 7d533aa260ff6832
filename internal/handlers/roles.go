package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kyildiz/user-admin-api/internal/dto"
	apierrors "github.com/kyildiz/user-admin-api/internal/errors"
	"github.com/kyildiz/user-admin-api/internal/services"
)

// RoleHandler coordinates role administration HTTP handlers.
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// ListRoles returns all roles with member counts.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch roles")
		return
	}

	response := make([]dto.RoleWithMembersDTO, len(roles))
	for i, role := range roles {
		response[i] = dto.ToRoleWithMembersDTO(role, false)
	}
	c.JSON(http.StatusOK, response)
}

// GetRole returns a role with its members.
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.Get(id)
	if err != nil {
		respondRoleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleWithMembersDTO(*role, true))
}

// CreateRole creates a role with a unique name.
func (h *RoleHandler) CreateRole(c *gin.Context) {
	type RoleRequest struct {
		Name        string `json:"Name" binding:"required,max=50"`
		Description string `json:"Description" binding:"max=255"`
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.roleService.Create(req.Name, req.Description)
	if err != nil {
		respondRoleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"Success": true,
		"Message": "Role created successfully",
		"RoleId":  role.ID,
	})
}

// UpdateRole renames or re-describes a role.
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type RoleRequest struct {
		Name        string `json:"Name" binding:"required,max=50"`
		Description string `json:"Description" binding:"max=255"`
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.roleService.Update(id, req.Name, req.Description); err != nil {
		respondRoleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Success": true,
		"Message": "Role updated successfully",
	})
}

// DeleteRole removes a role with no members.
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.Delete(id); err != nil {
		respondRoleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Success": true,
		"Message": "Role deleted successfully",
	})
}

func respondRoleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoleNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrRoleNameTaken),
		errors.Is(err, services.ErrRoleInUse):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrRoleNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
