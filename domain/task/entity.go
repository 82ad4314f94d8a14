package task

import (
	"time"
)

// Priority is the importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the recognized priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is a single to-do item owned by exactly one user for its
// lifetime. Deletes are hard deletes; there is no versioning.
type Task struct {
	ID        string   `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string   `gorm:"index;not null;size:36" json:"owner_id"`
	Title     string   `gorm:"not null;size:200" json:"title"`
	Priority  Priority `gorm:"not null;size:10" json:"priority"`
	Completed bool     `gorm:"not null;default:false" json:"completed"`
	// DueDate is optional and carries date precision only.
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Overdue reports whether the task's due date has passed relative to
// today and the task is still open. Tasks without a due date are never
// overdue.
func (t *Task) Overdue(today time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(Midnight(today))
}

// Midnight truncates a timestamp to the start of its day in UTC.
// Due dates are stored and compared at this precision.
func Midnight(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
