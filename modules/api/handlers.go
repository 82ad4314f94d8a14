package api

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	domain "github.com/Sangrampatil04/task-manager/domain/user"
	"github.com/Sangrampatil04/task-manager/modules/auth"
	"github.com/Sangrampatil04/task-manager/modules/mailer"
	"github.com/Sangrampatil04/task-manager/modules/reminder"
	"github.com/Sangrampatil04/task-manager/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the web surface.
type Handlers struct {
	auth       auth.AuthPort
	tasks      task.TaskPort
	mail       mailer.MailerPort
	reminders  reminder.ReminderPort
	sessionTTL time.Duration
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, taskPort task.TaskPort, mailPort mailer.MailerPort, reminderPort reminder.ReminderPort, sessionTTL time.Duration) *Handlers {
	return &Handlers{
		auth:       authPort,
		tasks:      taskPort,
		mail:       mailPort,
		reminders:  reminderPort,
		sessionTTL: sessionTTL,
	}
}

// claims returns the authenticated identity set by RequireSession.
func claims(c *fiber.Ctx) (*domain.Claims, bool) {
	cl, ok := c.Locals(UserContextKey).(*domain.Claims)
	return cl, ok
}

// Home redirects the root path to the dashboard.
func (h *Handlers) Home(c *fiber.Ctx) error {
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// Dashboard renders the task list with aggregate statistics. The
// optional filter query parameter narrows the list; the counts always
// cover the user's full task set.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	filter := c.Query("filter", "all")

	list, err := h.tasks.List(c.UserContext(), cl.UserID, filter)
	if err != nil {
		return h.internalError(c, err)
	}

	stats, err := h.tasks.Stats(c.UserContext(), cl.UserID)
	if err != nil {
		return h.internalError(c, err)
	}

	return c.Render("dashboard", DashboardView{
		Username: cl.Username,
		Tasks:    list.Tasks,
		Stats:    *stats,
		Filter:   list.Filter,
		Error:    c.Query("error"),
	})
}

// CreateTask handles the dashboard create form and redirects back to
// the idempotent view.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	_, err := h.tasks.Create(c.UserContext(), task.CreateTaskRequest{
		OwnerID:  cl.UserID,
		Title:    strings.TrimSpace(c.FormValue("title")),
		Priority: c.FormValue("priority"),
		DueDate:  c.FormValue("due_date"),
	})
	if err != nil {
		return redirectWithError(c, "/dashboard", serviceErrorMessage(err, "Could not create task"))
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// EditTaskForm renders the edit form for one of the user's tasks.
func (h *Handlers) EditTaskForm(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	t, err := h.tasks.Get(c.UserContext(), c.Params("id"), cl.UserID)
	if err != nil {
		if isNotFound(err) {
			return fiber.ErrNotFound
		}
		return h.internalError(c, err)
	}

	return c.Render("edit_task", EditTaskView{
		Username: cl.Username,
		Task:     *t,
		Error:    c.Query("error"),
	})
}

// UpdateTask overwrites title, priority, and due date of one task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	id := c.Params("id")
	_, err := h.tasks.Update(c.UserContext(), task.UpdateTaskRequest{
		ID:       id,
		OwnerID:  cl.UserID,
		Title:    strings.TrimSpace(c.FormValue("title")),
		Priority: c.FormValue("priority"),
		DueDate:  c.FormValue("due_date"),
	})
	if err != nil {
		if isNotFound(err) {
			return fiber.ErrNotFound
		}
		return redirectWithError(c, "/tasks/"+id+"/edit", serviceErrorMessage(err, "Could not update task"))
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// CompleteTask marks one task as completed. There is no un-complete path.
func (h *Handlers) CompleteTask(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := h.tasks.Complete(c.UserContext(), c.Params("id"), cl.UserID); err != nil {
		if isNotFound(err) {
			return fiber.ErrNotFound
		}
		return h.internalError(c, err)
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// DeleteTask permanently removes one task.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	cl, ok := claims(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := h.tasks.Delete(c.UserContext(), c.Params("id"), cl.UserID); err != nil {
		if isNotFound(err) {
			return fiber.ErrNotFound
		}
		return h.internalError(c, err)
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// SignupForm renders the signup page.
func (h *Handlers) SignupForm(c *fiber.Ctx) error {
	return c.Render("signup", AuthFormView{Error: c.Query("error")})
}

// Signup creates an account, sends a best-effort welcome mail, and logs
// the new user in immediately.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	resp, err := h.auth.Signup(
		c.UserContext(),
		strings.TrimSpace(c.FormValue("username")),
		strings.TrimSpace(c.FormValue("email")),
		c.FormValue("password1"),
		c.FormValue("password2"),
	)
	if err != nil {
		return redirectWithError(c, "/signup", serviceErrorMessage(err, "Could not create account"))
	}

	// Welcome mail is best-effort: a delivery failure never fails the signup.
	if err := h.mail.Send(c.UserContext(),
		resp.Email,
		"Verify your Task Manager account",
		"Your account has been created successfully. You can now login.",
	); err != nil {
		log.Printf("[api] Welcome mail to %s failed: %v", resp.Email, err)
	}

	h.setSessionCookie(c, resp.SessionToken)
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(c *fiber.Ctx) error {
	return c.Render("login", AuthFormView{Error: c.Query("error")})
}

// Login authenticates a user and establishes a session. The failure
// message is deliberately generic so it does not reveal whether the
// username exists.
func (h *Handlers) Login(c *fiber.Ctx) error {
	token, err := h.auth.Login(
		c.UserContext(),
		strings.TrimSpace(c.FormValue("username")),
		c.FormValue("password"),
	)
	if err != nil {
		return redirectWithError(c, "/login", "Invalid credentials")
	}

	h.setSessionCookie(c, token)
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// Logout tears down the session.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// RunReminders triggers one reminder run. Meant for manual or external
// triggering (e.g. cron hitting the endpoint); there is no scheduler.
func (h *Handlers) RunReminders(c *fiber.Ctx) error {
	resp, err := h.reminders.Run(c.UserContext())
	if err != nil {
		return h.internalError(c, err)
	}
	return c.SendString(fmt.Sprintf("Reminders sent: %d (due %d, skipped %d, failed %d)",
		resp.Sent, resp.Due, resp.Skipped, resp.Failed))
}

// setSessionCookie establishes the logged-in session.
func (h *Handlers) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// internalError logs the real error and returns an opaque 500.
func (h *Handlers) internalError(c *fiber.Ctx, err error) error {
	log.Printf("[api] Internal error: %v", err)
	return fiber.ErrInternalServerError
}

// redirectWithError sends the browser back to a form with a user-visible
// message in the query string.
func redirectWithError(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path+"?error="+url.QueryEscape(msg), fiber.StatusSeeOther)
}

// isNotFound reports whether a service error describes a missing record.
// Errors crossing the service container arrive as plain messages, so
// this matches on text.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}

// serviceErrorMessage maps known service error messages to user-visible
// text and hides everything else behind a fallback.
func serviceErrorMessage(err error, fallback string) string {
	errStr := err.Error()

	for _, known := range []string{
		"passwords do not match",
		"username already exists",
		"username is required",
		"invalid email format",
		"password must be at least 8 characters",
		"password must be at most 72 characters",
		"title is required",
		"priority must be one of High, Medium, Low",
		"invalid due date",
	} {
		if strings.Contains(errStr, known) {
			return strings.ToUpper(known[:1]) + known[1:]
		}
	}

	log.Printf("[api] Unmapped service error: %v", err)
	return fallback
}
