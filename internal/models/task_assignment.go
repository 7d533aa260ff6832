package models

import "time"

type AssignmentStatus string

const (
	StatusPending    AssignmentStatus = "Pending"
	StatusInProgress AssignmentStatus = "InProgress"
	StatusCompleted  AssignmentStatus = "Completed"
)

// Rank orders statuses for employee views (open work sorts first).
func (s AssignmentStatus) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	default:
		return -1
	}
}

type TaskAssignment struct {
	ID            uint64           `gorm:"primarykey" json:"id"`
	TaskID        uint64           `gorm:"not null;uniqueIndex:idx_assignments_task_user" json:"task_id"`
	UserID        uint64           `gorm:"not null;uniqueIndex:idx_assignments_task_user" json:"user_id"`
	Status        AssignmentStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	AssignedDate  time.Time        `gorm:"autoCreateTime" json:"assigned_date"`
	CompletedDate *time.Time       `json:"completed_date"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
