// Package reminder implements the manually triggered due-date reminder
// run. There is no internal scheduler: the run service is invoked from
// the HTTP surface (or externally, e.g. cron hitting the endpoint) and
// is safely re-runnable, re-sending for any task still unresolved.
package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Sangrampatil04/task-manager/modules/auth"
	"github.com/Sangrampatil04/task-manager/modules/mailer"
	"github.com/Sangrampatil04/task-manager/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ReminderModule sends one reminder per open task due today.
type ReminderModule struct {
	tasks  task.TaskPort
	users  auth.AuthPort
	mail   mailer.MailerPort
}

// Compile-time interface checks.
var _ mono.Module = (*ReminderModule)(nil)
var _ mono.ServiceProviderModule = (*ReminderModule)(nil)
var _ mono.DependentModule = (*ReminderModule)(nil)

// NewModule creates a new ReminderModule.
func NewModule() *ReminderModule {
	return &ReminderModule{}
}

// Name returns the module name.
func (m *ReminderModule) Name() string {
	return "reminder"
}

// Dependencies returns the list of module dependencies.
func (m *ReminderModule) Dependencies() []string {
	return []string{"task", "auth", "mailer"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *ReminderModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.tasks = task.NewTaskAdapter(container)
	case "auth":
		m.users = auth.NewAuthAdapter(container)
	case "mailer":
		m.mail = mailer.NewMailerAdapter(container)
	}
}

// Start verifies dependencies are wired.
func (m *ReminderModule) Start(_ context.Context) error {
	if m.tasks == nil || m.users == nil || m.mail == nil {
		return fmt.Errorf("reminder dependencies not set")
	}
	log.Println("[reminder] Module started")
	return nil
}

// Stop shuts down the module.
func (m *ReminderModule) Stop(_ context.Context) error {
	log.Println("[reminder] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *ReminderModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "run", json.Unmarshal, json.Marshal, m.handleRun,
	); err != nil {
		return fmt.Errorf("failed to register run service: %w", err)
	}

	log.Printf("[reminder] Registered services: run")
	return nil
}

// handleRun handles the reminder.run service request.
func (m *ReminderModule) handleRun(ctx context.Context, _ RunRequest, _ *mono.Msg) (RunResponse, error) {
	return m.run(ctx)
}
