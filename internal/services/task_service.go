package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kyildiz/user-admin-api/internal/authz"
	"github.com/kyildiz/user-admin-api/internal/models"
	"github.com/kyildiz/user-admin-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidPriority    = errors.New("invalid task priority")
	ErrNoTargetUsers      = errors.New("at least one target user is required")
	ErrUnknownUsers       = errors.New("one or more target users do not exist")
	ErrAssignmentNotFound = errors.New("task assignment not found")
)

// TaskService handles task creation, completion and the ordered views
// for employees and managers.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task with its fan-out
// assignments.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
	ManagerID   uint64
	UserIDs     []uint64
}

// CreateTask creates one task and one Pending assignment per distinct
// target user, atomically. The creating manager must be allowed to
// target every user.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	userIDs := uniqueUint64(input.UserIDs)
	if len(userIDs) == 0 {
		return nil, ErrNoTargetUsers
	}

	manager, err := s.userRepo.FindByID(input.ManagerID, "Roles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authz.ErrInvalidManager
		}
		return nil, fmt.Errorf("failed to find manager: %w", err)
	}

	targets, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target users: %w", err)
	}
	if len(targets) != len(userIDs) {
		return nil, ErrUnknownUsers
	}

	if err := authz.CanAssignTask(manager, targets); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:               input.Title,
		Description:         input.Description,
		Priority:            input.Priority,
		DueDate:             input.DueDate,
		AssignedByManagerID: manager.ID,
	}
	for _, target := range targets {
		task.Assignments = append(task.Assignments, models.TaskAssignment{
			UserID: target.ID,
			Status: models.StatusPending,
		})
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID,
		"AssignedByManager", "Assignments", "Assignments.User")
}

// CompleteAssignment marks the (task, user) assignment completed.
// Completing an already-completed assignment returns the stored row
// unchanged.
func (s *TaskService) CompleteAssignment(taskID, userID uint64) (*models.TaskAssignment, error) {
	assignment, err := s.taskRepo.CompleteAssignment(taskID, userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to complete assignment: %w", err)
	}
	return assignment, nil
}

// ListForUser returns the user's tasks ordered by assignment status,
// then due date (missing last), then creation date descending.
func (s *TaskService) ListForUser(userID uint64) ([]models.Task, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	tasks, err := s.taskRepo.ListByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		si := assignmentStatusRank(tasks[i], userID)
		sj := assignmentStatusRank(tasks[j], userID)
		if si != sj {
			return si < sj
		}
		if c := compareDueDates(tasks[i].DueDate, tasks[j].DueDate); c != 0 {
			return c < 0
		}
		return tasks[i].CreatedDate.After(tasks[j].CreatedDate)
	})

	return tasks, nil
}

// ListForManager returns the manager's created tasks ordered by
// priority descending, then due date (missing last), then creation date
// descending. The user must hold the Manager or Admin role.
func (s *TaskService) ListForManager(managerID uint64) ([]models.Task, error) {
	manager, err := s.userRepo.FindByID(managerID, "Roles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find manager: %w", err)
	}
	if !manager.IsManagerOrAdmin() {
		return nil, ErrNotManager
	}

	tasks, err := s.taskRepo.ListByManager(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		pi := tasks[i].Priority.Rank()
		pj := tasks[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		if c := compareDueDates(tasks[i].DueDate, tasks[j].DueDate); c != 0 {
			return c < 0
		}
		return tasks[i].CreatedDate.After(tasks[j].CreatedDate)
	})

	return tasks, nil
}

func assignmentStatusRank(task models.Task, userID uint64) int {
	for _, a := range task.Assignments {
		if a.UserID == userID {
			return a.Status.Rank()
		}
	}
	return -1
}

// compareDueDates orders due dates ascending with nil sorting last.
func compareDueDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	default:
		return 0
	}
}

// uniqueUint64 removes duplicate values while preserving order.
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
