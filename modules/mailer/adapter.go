package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// MailerPort defines the interface other modules use to send mail.
type MailerPort interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailerAdapter implements MailerPort using the service container.
type MailerAdapter struct {
	container mono.ServiceContainer
}

// NewMailerAdapter creates a new MailerAdapter.
func NewMailerAdapter(container mono.ServiceContainer) *MailerAdapter {
	return &MailerAdapter{
		container: container,
	}
}

// Send delivers one message, returning an error when the mailer reports
// a failed delivery. Callers decide whether to swallow it.
func (a *MailerAdapter) Send(ctx context.Context, to, subject, body string) error {
	req := SendRequest{To: to, Subject: subject, Body: body}
	var resp SendResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "send", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return fmt.Errorf("send request failed: %w", err)
	}

	if !resp.Delivered {
		return fmt.Errorf("delivery failed: %s", resp.Error)
	}
	return nil
}
