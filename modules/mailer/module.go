package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Sangrampatil04/task-manager/config"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// MailerModule provides the outbound notification service used for
// welcome mail and due-date reminders.
type MailerModule struct {
	cfg    config.Config
	sender Sender
}

// Compile-time interface checks.
var _ mono.Module = (*MailerModule)(nil)
var _ mono.ServiceProviderModule = (*MailerModule)(nil)
var _ mono.HealthCheckableModule = (*MailerModule)(nil)

// NewModule creates a new MailerModule.
func NewModule(cfg config.Config) *MailerModule {
	return &MailerModule{
		cfg: cfg,
	}
}

// Name returns the module name.
func (m *MailerModule) Name() string {
	return "mailer"
}

// Start selects the delivery backend from configuration.
func (m *MailerModule) Start(_ context.Context) error {
	if m.cfg.SMTPHost != "" {
		m.sender = newSMTPSender(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.MailFrom)
		log.Printf("[mailer] Module started (smtp: %s:%d)", m.cfg.SMTPHost, m.cfg.SMTPPort)
		return nil
	}

	m.sender = newLogSender(m.cfg.MailFrom)
	log.Println("[mailer] Module started (no SMTP host configured, logging outgoing mail)")
	return nil
}

// Stop shuts down the module.
func (m *MailerModule) Stop(_ context.Context) error {
	log.Println("[mailer] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *MailerModule) Health(_ context.Context) mono.HealthStatus {
	backend := "log"
	if m.cfg.SMTPHost != "" {
		backend = "smtp"
	}
	return mono.HealthStatus{
		Healthy: m.sender != nil,
		Message: "operational",
		Details: map[string]any{
			"backend": backend,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *MailerModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "send", json.Unmarshal, json.Marshal, m.handleSend,
	); err != nil {
		return fmt.Errorf("failed to register send service: %w", err)
	}

	log.Printf("[mailer] Registered services: send")
	return nil
}

// handleSend handles one delivery request.
func (m *MailerModule) handleSend(_ context.Context, req SendRequest, _ *mono.Msg) (SendResponse, error) {
	if req.To == "" {
		return SendResponse{Delivered: false, Error: "recipient is required"}, nil
	}

	if err := m.sender.Send(req.To, req.Subject, req.Body); err != nil {
		log.Printf("[mailer] Delivery to %s failed: %v", req.To, err)
		return SendResponse{Delivered: false, Error: err.Error()}, nil
	}

	return SendResponse{Delivered: true}, nil
}
