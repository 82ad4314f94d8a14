package task

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the interface other modules use to reach task
// functionality through the service container.
type TaskPort interface {
	Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)
	List(ctx context.Context, ownerID, filter string) (*ListTasksResponse, error)
	Stats(ctx context.Context, ownerID string) (*StatsResponse, error)
	Get(ctx context.Context, id, ownerID string) (*TaskResponse, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*TaskResponse, error)
	Complete(ctx context.Context, id, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
	DueToday(ctx context.Context) ([]TaskResponse, error)
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

// Create creates a task for an owner.
func (a *TaskAdapter) Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List retrieves an owner's tasks narrowed by filter.
func (a *TaskAdapter) List(ctx context.Context, ownerID, filter string) (*ListTasksResponse, error) {
	req := ListTasksRequest{OwnerID: ownerID, Filter: filter}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats retrieves an owner's aggregate progress numbers.
func (a *TaskAdapter) Stats(ctx context.Context, ownerID string) (*StatsResponse, error) {
	req := StatsRequest{OwnerID: ownerID}
	var resp StatsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "stats", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get retrieves one task by id and owner together.
func (a *TaskAdapter) Get(ctx context.Context, id, ownerID string) (*TaskResponse, error) {
	req := GetTaskRequest{ID: id, OwnerID: ownerID}
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update edits a task's title, priority, and due date.
func (a *TaskAdapter) Update(ctx context.Context, req UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Complete marks a task as completed.
func (a *TaskAdapter) Complete(ctx context.Context, id, ownerID string) error {
	req := CompleteTaskRequest{ID: id, OwnerID: ownerID}
	var resp CompleteTaskResponse
	return helper.CallRequestReplyService(
		ctx, a.container, "complete", json.Marshal, json.Unmarshal, &req, &resp,
	)
}

// Delete permanently removes a task.
func (a *TaskAdapter) Delete(ctx context.Context, id, ownerID string) error {
	req := DeleteTaskRequest{ID: id, OwnerID: ownerID}
	var resp DeleteTaskResponse
	return helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, &req, &resp,
	)
}

// DueToday retrieves every open task due today across all owners.
func (a *TaskAdapter) DueToday(ctx context.Context) ([]TaskResponse, error) {
	req := DueTodayRequest{}
	var resp DueTodayResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "due-today", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}
