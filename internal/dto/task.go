package dto

import (
	"time"

	"github.com/kyildiz/user-admin-api/internal/models"
)

// TaskAssignmentDTO represents a task assignment in API responses
type TaskAssignmentDTO struct {
	AssignmentID  uint64     `json:"AssignmentId"`
	TaskID        uint64     `json:"TaskId"`
	UserID        uint64     `json:"UserId"`
	UserName      string     `json:"UserName"`
	Status        string     `json:"Status"`
	AssignedDate  time.Time  `json:"AssignedDate"`
	CompletedDate *time.Time `json:"CompletedDate"`
}

// TaskDTO represents a task with its assignments in API responses
type TaskDTO struct {
	ID                    uint64              `json:"Id"`
	Title                 string              `json:"Title"`
	Description           string              `json:"Description"`
	Priority              string              `json:"Priority"`
	CreatedDate           time.Time           `json:"CreatedDate"`
	DueDate               *time.Time          `json:"DueDate"`
	AssignedByManagerID   uint64              `json:"AssignedByManagerId"`
	AssignedByManagerName string              `json:"AssignedByManagerName"`
	Assignments           []TaskAssignmentDTO `json:"Assignments"`
}

// ToTaskDTO converts a Task with preloaded relations, including every
// assignment.
func ToTaskDTO(task models.Task) TaskDTO {
	return toTaskDTO(task, nil)
}

// ToTaskDTOForUser converts a Task projected to a single assignee's
// assignment.
func ToTaskDTOForUser(task models.Task, userID uint64) TaskDTO {
	return toTaskDTO(task, &userID)
}

func toTaskDTO(task models.Task, forUserID *uint64) TaskDTO {
	dto := TaskDTO{
		ID:                    task.ID,
		Title:                 task.Title,
		Description:           task.Description,
		Priority:              string(task.Priority),
		CreatedDate:           task.CreatedDate,
		DueDate:               task.DueDate,
		AssignedByManagerID:   task.AssignedByManagerID,
		AssignedByManagerName: task.AssignedByManager.DisplayName(),
	}

	dto.Assignments = make([]TaskAssignmentDTO, 0, len(task.Assignments))
	for _, a := range task.Assignments {
		if forUserID != nil && a.UserID != *forUserID {
			continue
		}
		dto.Assignments = append(dto.Assignments, TaskAssignmentDTO{
			AssignmentID:  a.ID,
			TaskID:        a.TaskID,
			UserID:        a.UserID,
			UserName:      a.User.DisplayName(),
			Status:        string(a.Status),
			AssignedDate:  a.AssignedDate,
			CompletedDate: a.CompletedDate,
		})
	}

	return dto
}
