package api

import (
	"github.com/Sangrampatil04/task-manager/modules/task"
)

// DashboardView is the view model for the dashboard page: the filtered
// task collection, the four aggregate statistics, and the active filter.
type DashboardView struct {
	Username string
	Tasks    []task.TaskResponse
	Stats    task.StatsResponse
	Filter   string
	Error    string
}

// EditTaskView is the view model for the task edit form.
type EditTaskView struct {
	Username string
	Task     task.TaskResponse
	Error    string
}

// AuthFormView is the view model for the login and signup forms.
type AuthFormView struct {
	Error string
}

// ErrorResponse represents a JSON error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
