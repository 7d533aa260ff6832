package repository

import (
	"time"

	"github.com/kyildiz/user-admin-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a task and its assignments in one transaction.
// GORM inserts the embedded Assignments together with the task.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByAssignee lists tasks that carry an assignment for the user
func (r *GormTaskRepository) ListByAssignee(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
		Select("1").
		Where("task_assignments.task_id = tasks.id").
		Where("task_assignments.user_id = ?", userID)

	if err := r.db.
		Preload("AssignedByManager").
		Preload("Assignments").
		Preload("Assignments.User").
		Where("EXISTS (?)", assignmentSubQuery).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByManager lists tasks created by the manager
func (r *GormTaskRepository) ListByManager(managerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("AssignedByManager").
		Preload("Assignments").
		Preload("Assignments.User").
		Where("assigned_by_manager_id = ?", managerID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CompleteAssignment marks the assignment completed. The status change
// is a single conditional UPDATE, so two concurrent completers cannot
// both write a completion date: the loser sees zero affected rows and
// reads back the winner's result.
func (r *GormTaskRepository) CompleteAssignment(taskID, userID uint64, completedAt time.Time) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TaskAssignment{}).
			Where("task_id = ? AND user_id = ? AND status <> ?", taskID, userID, models.StatusCompleted).
			Updates(map[string]interface{}{
				"status":         models.StatusCompleted,
				"completed_date": completedAt,
			})
		if res.Error != nil {
			return res.Error
		}

		// Either the row was just completed, was already completed, or
		// does not exist; the read distinguishes the last case.
		return tx.Where("task_id = ? AND user_id = ?", taskID, userID).
			First(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
