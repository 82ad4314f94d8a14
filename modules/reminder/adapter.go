package reminder

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ReminderPort defines the interface for triggering a reminder run.
type ReminderPort interface {
	Run(ctx context.Context) (*RunResponse, error)
}

// ReminderAdapter implements ReminderPort using the service container.
type ReminderAdapter struct {
	container mono.ServiceContainer
}

// NewReminderAdapter creates a new ReminderAdapter.
func NewReminderAdapter(container mono.ServiceContainer) *ReminderAdapter {
	return &ReminderAdapter{
		container: container,
	}
}

// Run triggers one reminder run and returns its summary.
func (a *ReminderAdapter) Run(ctx context.Context) (*RunResponse, error) {
	req := RunRequest{}
	var resp RunResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "run", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return &resp, nil
}
