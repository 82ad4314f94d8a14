package reminder

import (
	"context"
	"fmt"
	"log"
)

// RunRequest triggers a reminder run.
type RunRequest struct{}

// RunResponse summarizes one reminder run.
type RunResponse struct {
	Due     int `json:"due"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// run selects every open task due today across all owners and sends one
// reminder per task. Delivery failures are logged and swallowed so one
// bad address never blocks the rest of the run. Reminders are not
// deduplicated: running twice re-sends for every unresolved task.
func (m *ReminderModule) run(ctx context.Context) (RunResponse, error) {
	due, err := m.tasks.DueToday(ctx)
	if err != nil {
		return RunResponse{}, fmt.Errorf("failed to list due tasks: %w", err)
	}

	resp := RunResponse{Due: len(due)}

	for _, t := range due {
		owner, err := m.users.GetUser(ctx, t.OwnerID)
		if err != nil {
			log.Printf("[reminder] Skipping task %s: owner lookup failed: %v", t.ID, err)
			resp.Skipped++
			continue
		}
		if owner.Email == "" {
			resp.Skipped++
			continue
		}

		subject := "Task Reminder"
		body := fmt.Sprintf("Reminder: '%s' is due today.", t.Title)
		if err := m.mail.Send(ctx, owner.Email, subject, body); err != nil {
			log.Printf("[reminder] Reminder for task %s to %s failed: %v", t.ID, owner.Email, err)
			resp.Failed++
			continue
		}
		resp.Sent++
	}

	log.Printf("[reminder] Run finished: due=%d sent=%d skipped=%d failed=%d",
		resp.Due, resp.Sent, resp.Skipped, resp.Failed)
	return resp, nil
}
