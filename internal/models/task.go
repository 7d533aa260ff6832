package models

import "time"

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Rank orders priorities for manager views (High sorts first).
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	default:
		return -1
	}
}

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	return p.Rank() >= 0
}

type Task struct {
	ID                  uint64       `gorm:"primarykey" json:"id"`
	Title               string       `gorm:"type:varchar(200);not null" json:"title"`
	Description         string       `gorm:"type:varchar(2000)" json:"description"`
	Priority            TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	CreatedDate         time.Time    `gorm:"autoCreateTime" json:"created_date"`
	DueDate             *time.Time   `json:"due_date"`
	AssignedByManagerID uint64       `gorm:"not null" json:"assigned_by_manager_id"`

	// Relations
	AssignedByManager User             `gorm:"foreignKey:AssignedByManagerID" json:"assigned_by_manager,omitempty"`
	Assignments       []TaskAssignment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}
