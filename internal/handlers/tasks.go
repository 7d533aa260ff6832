package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kyildiz/user-admin-api/internal/authz"
	"github.com/kyildiz/user-admin-api/internal/dto"
	apierrors "github.com/kyildiz/user-admin-api/internal/errors"
	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/kyildiz/user-admin-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task and fans out one assignment per target user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string     `json:"Title" binding:"required,max=200"`
		Description string     `json:"Description" binding:"max=2000"`
		Priority    string     `json:"Priority" binding:"required"`
		DueDate     *time.Time `json:"DueDate"`
		ManagerID   uint64     `json:"ManagerId" binding:"required"`
		UserIDs     []uint64   `json:"UserIds" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		ManagerID:   req.ManagerID,
		UserIDs:     req.UserIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"Success": true,
		"Message": "Task created successfully",
		"Task":    dto.ToTaskDTO(*task),
	})
}

// CompleteTask completes the assignment of one user on a task.
// Repeating a completion is a no-op success.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CompleteTaskRequest struct {
		UserID uint64 `json:"UserId" binding:"required"`
	}

	var req CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.taskService.CompleteAssignment(taskID, req.UserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Success": true,
		"Message": "Task completed",
		"Assignment": gin.H{
			"Id":            assignment.ID,
			"TaskId":        assignment.TaskID,
			"Status":        assignment.Status,
			"CompletedDate": assignment.CompletedDate,
		},
	})
}

// GetUserTasks returns the tasks assigned to a user, projected to that
// user's assignment.
func (h *TaskHandler) GetUserTasks(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListForUser(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		response[i] = dto.ToTaskDTOForUser(task, userID)
	}
	c.JSON(http.StatusOK, response)
}

// GetManagerTasks returns the tasks a manager created, with every
// assignment.
func (h *TaskHandler) GetManagerTasks(c *gin.Context) {
	managerID, ok := parseIDParam(c, "manager_id")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListForManager(managerID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	response := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		response[i] = dto.ToTaskDTO(task)
	}
	c.JSON(http.StatusOK, response)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, authz.ErrUnauthorizedAssignment):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrNoTargetUsers),
		errors.Is(err, services.ErrUnknownUsers),
		errors.Is(err, services.ErrNotManager),
		errors.Is(err, authz.ErrInvalidManager):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
