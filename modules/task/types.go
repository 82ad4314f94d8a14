package task

import (
	"time"
)

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	OwnerID  string `json:"owner_id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	// DueDate is an optional YYYY-MM-DD calendar date.
	DueDate string `json:"due_date,omitempty"`
}

// TaskResponse represents a single task.
type TaskResponse struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Title     string     `json:"title"`
	Priority  string     `json:"priority"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Overdue   bool       `json:"overdue"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListTasksRequest represents a filtered list request for one owner.
type ListTasksRequest struct {
	OwnerID string `json:"owner_id"`
	Filter  string `json:"filter,omitempty"`
}

// ListTasksResponse represents a filtered list response.
type ListTasksResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Filter string         `json:"filter"`
}

// StatsRequest represents a dashboard statistics request.
type StatsRequest struct {
	OwnerID string `json:"owner_id"`
}

// StatsResponse carries the owner's aggregate progress numbers.
type StatsResponse struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	Pending         int `json:"pending"`
	ProgressPercent int `json:"progress_percent"`
}

// GetTaskRequest represents a single-task lookup scoped to an owner.
type GetTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// UpdateTaskRequest represents an edit of title, priority, and due date.
type UpdateTaskRequest struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date,omitempty"`
}

// CompleteTaskRequest represents a completion request.
type CompleteTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// CompleteTaskResponse represents a completion response.
type CompleteTaskResponse struct {
	Completed bool   `json:"completed"`
	ID        string `json:"id"`
}

// DeleteTaskRequest represents a deletion request.
type DeleteTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// DeleteTaskResponse represents a deletion response.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// DueTodayRequest asks for every open task due today, across owners.
type DueTodayRequest struct{}

// DueTodayResponse lists open tasks due today.
type DueTodayResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}
