package task

import (
	"context"
	"fmt"
	"time"

	domain "github.com/Sangrampatil04/task-manager/domain/task"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// dueDateFormat is the wire and form format for calendar due dates.
const dueDateFormat = "2006-01-02"

// parseDueDate converts an optional YYYY-MM-DD string to a date-precision
// timestamp. An empty string means no due date.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dueDateFormat, s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", s)
	}
	return &d, nil
}

// createTask handles the task.create service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.OwnerID == "" {
		return TaskResponse{}, fmt.Errorf("owner_id is required")
	}
	if req.Title == "" {
		return TaskResponse{}, fmt.Errorf("title is required")
	}
	priority := domain.Priority(req.Priority)
	if !priority.Valid() {
		return TaskResponse{}, fmt.Errorf("priority must be one of High, Medium, Low")
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}

	task := &domain.Task{
		ID:        uuid.New().String(),
		OwnerID:   req.OwnerID,
		Title:     req.Title,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: time.Now(),
	}

	if err := m.repo.Create(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	return toTaskResponse(task), nil
}

// listTasks handles the task.list service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.OwnerID == "" {
		return ListTasksResponse{}, fmt.Errorf("owner_id is required")
	}

	filter := domain.ParseStatusFilter(req.Filter)
	tasks, err := m.repo.ListByOwner(req.OwnerID, filter)
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{
		Tasks:  make([]TaskResponse, 0, len(tasks)),
		Filter: string(filter),
	}
	for _, task := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(task))
	}
	return resp, nil
}

// taskStats handles the task.stats service request. Counts always cover
// the owner's full task set, independent of any list filter.
func (m *TaskModule) taskStats(_ context.Context, req StatsRequest, _ *mono.Msg) (StatsResponse, error) {
	if req.OwnerID == "" {
		return StatsResponse{}, fmt.Errorf("owner_id is required")
	}

	total, completed, err := m.repo.CountByOwner(req.OwnerID)
	if err != nil {
		return StatsResponse{}, err
	}

	return computeStats(total, completed), nil
}

// computeStats derives the dashboard numbers. Integer division floors
// the percentage, so 1 of 3 reports 33.
func computeStats(total, completed int64) StatsResponse {
	stats := StatsResponse{
		Total:     int(total),
		Completed: int(completed),
		Pending:   int(total - completed),
	}
	if total > 0 {
		stats.ProgressPercent = int(completed * 100 / total)
	}
	return stats
}

// getTask handles the task.get service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.ID == "" || req.OwnerID == "" {
		return TaskResponse{}, fmt.Errorf("id and owner_id are required")
	}

	task, err := m.repo.FindByIDAndOwner(req.ID, req.OwnerID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// updateTask handles the task.update service request.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.ID == "" || req.OwnerID == "" {
		return TaskResponse{}, fmt.Errorf("id and owner_id are required")
	}
	if req.Title == "" {
		return TaskResponse{}, fmt.Errorf("title is required")
	}
	priority := domain.Priority(req.Priority)
	if !priority.Valid() {
		return TaskResponse{}, fmt.Errorf("priority must be one of High, Medium, Low")
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}

	if err := m.repo.Update(req.ID, req.OwnerID, req.Title, priority, dueDate); err != nil {
		return TaskResponse{}, err
	}

	task, err := m.repo.FindByIDAndOwner(req.ID, req.OwnerID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// completeTask handles the task.complete service request.
func (m *TaskModule) completeTask(_ context.Context, req CompleteTaskRequest, _ *mono.Msg) (CompleteTaskResponse, error) {
	if req.ID == "" || req.OwnerID == "" {
		return CompleteTaskResponse{}, fmt.Errorf("id and owner_id are required")
	}

	if err := m.repo.Complete(req.ID, req.OwnerID); err != nil {
		return CompleteTaskResponse{Completed: false, ID: req.ID}, err
	}
	return CompleteTaskResponse{Completed: true, ID: req.ID}, nil
}

// deleteTask handles the task.delete service request.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.ID == "" || req.OwnerID == "" {
		return DeleteTaskResponse{}, fmt.Errorf("id and owner_id are required")
	}

	if err := m.repo.Delete(req.ID, req.OwnerID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// dueToday handles the task.due-today service request.
func (m *TaskModule) dueToday(_ context.Context, _ DueTodayRequest, _ *mono.Msg) (DueTodayResponse, error) {
	tasks, err := m.repo.DueOn(time.Now())
	if err != nil {
		return DueTodayResponse{}, err
	}

	resp := DueTodayResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
	}
	for _, task := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(task))
	}
	return resp, nil
}

// toTaskResponse converts a Task entity to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		OwnerID:   task.OwnerID,
		Title:     task.Title,
		Priority:  string(task.Priority),
		Completed: task.Completed,
		DueDate:   task.DueDate,
		Overdue:   task.Overdue(time.Now()),
		CreatedAt: task.CreatedAt,
	}
}
