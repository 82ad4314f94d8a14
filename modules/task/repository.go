package task

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/Sangrampatil04/task-manager/domain/task"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no task matches both the identifier and
// the owner. A task belonging to another user is indistinguishable from
// a missing one.
var ErrNotFound = errors.New("task not found")

// Repository provides owner-scoped access to task storage. Every query
// that touches a single task filters on both id and owner, so the
// access-control invariant is enforced here rather than in each handler.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task to the database.
func (r *Repository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListByOwner retrieves the owner's tasks narrowed by the status filter.
func (r *Repository) ListByOwner(ownerID string, filter domain.StatusFilter) ([]*domain.Task, error) {
	query := r.db.Where("owner_id = ?", ownerID)

	switch filter {
	case domain.FilterCompleted:
		query = query.Where("completed = ?", true)
	case domain.FilterPending:
		query = query.Where("completed = ?", false)
	case domain.FilterOverdue:
		query = query.Where("completed = ? AND due_date IS NOT NULL AND due_date < ?",
			false, domain.Midnight(time.Now()))
	}

	var tasks []*domain.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CountByOwner returns the owner's total and completed task counts.
func (r *Repository) CountByOwner(ownerID string) (total, completed int64, err error) {
	if err = r.db.Model(&domain.Task{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	if err = r.db.Model(&domain.Task{}).
		Where("owner_id = ? AND completed = ?", ownerID, true).
		Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	return total, completed, nil
}

// FindByIDAndOwner retrieves a single task by id and owner together.
func (r *Repository) FindByIDAndOwner(id, ownerID string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.First(&task, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Update overwrites title, priority, and due date of the owner's task.
// A map is used so a cleared due date persists as NULL.
func (r *Repository) Update(id, ownerID, title string, priority domain.Priority, dueDate *time.Time) error {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]any{
			"title":    title,
			"priority": priority,
			"due_date": dueDate,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete marks the owner's task as completed. There is no un-complete path.
func (r *Repository) Complete(id, ownerID string) error {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("completed", true)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes the owner's task.
func (r *Repository) Delete(id, ownerID string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND owner_id = ?", id, ownerID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DueOn retrieves every open task, across all owners, due on the given
// day. Used by the reminder run.
func (r *Repository) DueOn(day time.Time) ([]*domain.Task, error) {
	start := domain.Midnight(day)
	end := start.AddDate(0, 0, 1)

	var tasks []*domain.Task
	err := r.db.
		Where("completed = ? AND due_date >= ? AND due_date < ?", false, start, end).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	return tasks, nil
}
