package api

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Sangrampatil04/task-manager/modules/auth"
	"github.com/Sangrampatil04/task-manager/modules/reminder"
	"github.com/Sangrampatil04/task-manager/modules/task"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

// mockTaskPort implements task.TaskPort for testing.
type mockTaskPort struct {
	createFunc   func(ctx context.Context, req task.CreateTaskRequest) (*task.TaskResponse, error)
	listFunc     func(ctx context.Context, ownerID, filter string) (*task.ListTasksResponse, error)
	statsFunc    func(ctx context.Context, ownerID string) (*task.StatsResponse, error)
	getFunc      func(ctx context.Context, id, ownerID string) (*task.TaskResponse, error)
	updateFunc   func(ctx context.Context, req task.UpdateTaskRequest) (*task.TaskResponse, error)
	completeFunc func(ctx context.Context, id, ownerID string) error
	deleteFunc   func(ctx context.Context, id, ownerID string) error
	dueTodayFunc func(ctx context.Context) ([]task.TaskResponse, error)
}

func (m *mockTaskPort) Create(ctx context.Context, req task.CreateTaskRequest) (*task.TaskResponse, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) List(ctx context.Context, ownerID, filter string) (*task.ListTasksResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Stats(ctx context.Context, ownerID string) (*task.StatsResponse, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, ownerID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Get(ctx context.Context, id, ownerID string) (*task.TaskResponse, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id, ownerID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Update(ctx context.Context, req task.UpdateTaskRequest) (*task.TaskResponse, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Complete(ctx context.Context, id, ownerID string) error {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, id, ownerID)
	}
	return errors.New("not implemented")
}

func (m *mockTaskPort) Delete(ctx context.Context, id, ownerID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, ownerID)
	}
	return errors.New("not implemented")
}

func (m *mockTaskPort) DueToday(ctx context.Context) ([]task.TaskResponse, error) {
	if m.dueTodayFunc != nil {
		return m.dueTodayFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// mockMailerPort records messages instead of sending them.
type mockMailerPort struct {
	sent    []string
	sendErr error
}

func (m *mockMailerPort) Send(_ context.Context, to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, to)
	return nil
}

// mockReminderPort implements reminder.ReminderPort for testing.
type mockReminderPort struct {
	runFunc func(ctx context.Context) (*reminder.RunResponse, error)
}

func (m *mockReminderPort) Run(ctx context.Context) (*reminder.RunResponse, error) {
	if m.runFunc != nil {
		return m.runFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// newTestApp builds a Fiber app with the real views and routes wired to
// the given mocks, mirroring APIModule.Start.
func newTestApp(t *testing.T, authPort auth.AuthPort, taskPort task.TaskPort, mailPort *mockMailerPort, reminderPort reminder.ReminderPort) *fiber.App {
	t.Helper()

	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		t.Fatalf("failed to load views: %v", err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Views:                 engine,
		ErrorHandler:          errorHandler,
	})

	handlers := NewHandlers(authPort, taskPort, mailPort, reminderPort, time.Hour)
	guard := RequireSession(authPort)

	app.Get("/signup", handlers.SignupForm)
	app.Post("/signup", handlers.Signup)
	app.Get("/login", handlers.LoginForm)
	app.Post("/login", handlers.Login)
	app.Get("/", guard, handlers.Home)
	app.Get("/dashboard", guard, handlers.Dashboard)
	app.Post("/dashboard", guard, handlers.CreateTask)
	app.Get("/tasks/:id/edit", guard, handlers.EditTaskForm)
	app.Post("/tasks/:id/edit", guard, handlers.UpdateTask)
	app.Post("/tasks/:id/complete", guard, handlers.CompleteTask)
	app.Post("/tasks/:id/delete", guard, handlers.DeleteTask)
	app.Get("/logout", guard, handlers.Logout)
	app.Get("/reminders/run", guard, handlers.RunReminders)

	return app
}

func authedRequest(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-token"})
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	return string(body)
}

func TestDashboard(t *testing.T) {
	tasks := &mockTaskPort{
		listFunc: func(_ context.Context, ownerID, filter string) (*task.ListTasksResponse, error) {
			if ownerID != "user-123" {
				t.Errorf("listed tasks for %q, want user-123", ownerID)
			}
			return &task.ListTasksResponse{
				Tasks: []task.TaskResponse{
					{ID: "t1", Title: "Pay rent", Priority: "High"},
					{ID: "t2", Title: "Walk dog", Priority: "Low", Completed: true},
				},
				Filter: "all",
			}, nil
		},
		statsFunc: func(context.Context, string) (*task.StatsResponse, error) {
			return &task.StatsResponse{Total: 3, Completed: 1, Pending: 2, ProgressPercent: 33}, nil
		},
	}

	app := newTestApp(t, validSession("user-123", "alice"), tasks, &mockMailerPort{}, &mockReminderPort{})

	resp, err := app.Test(authedRequest("GET", "/dashboard", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}

	body := readBody(t, resp)
	for _, want := range []string{"Pay rent", "Walk dog", "Progress: 33%", "Total: 3", "Pending: 2", "alice"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard body missing %q", want)
		}
	}
}

func TestCreateTask(t *testing.T) {
	t.Run("valid form redirects to dashboard", func(t *testing.T) {
		var created task.CreateTaskRequest
		tasks := &mockTaskPort{
			createFunc: func(_ context.Context, req task.CreateTaskRequest) (*task.TaskResponse, error) {
				created = req
				return &task.TaskResponse{ID: "t1"}, nil
			},
		}
		app := newTestApp(t, validSession("user-123", "alice"), tasks, &mockMailerPort{}, &mockReminderPort{})

		form := url.Values{"title": {"Pay rent"}, "priority": {"High"}, "due_date": {"2030-01-02"}}
		resp, err := app.Test(authedRequest("POST", "/dashboard", form), -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusSeeOther)
		}
		if got := resp.Header.Get("Location"); got != "/dashboard" {
			t.Errorf("Location = %q, want /dashboard", got)
		}
		if created.OwnerID != "user-123" {
			t.Errorf("owner taken from form instead of session: %q", created.OwnerID)
		}
		if created.Title != "Pay rent" || created.Priority != "High" || created.DueDate != "2030-01-02" {
			t.Errorf("created = %+v", created)
		}
	})

	t.Run("validation error redirects back with message", func(t *testing.T) {
		tasks := &mockTaskPort{
			createFunc: func(context.Context, task.CreateTaskRequest) (*task.TaskResponse, error) {
				return nil, errors.New("title is required")
			},
		}
		app := newTestApp(t, validSession("user-123", "alice"), tasks, &mockMailerPort{}, &mockReminderPort{})

		resp, err := app.Test(authedRequest("POST", "/dashboard", url.Values{"priority": {"High"}}), -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusSeeOther)
		}
		loc := resp.Header.Get("Location")
		if !strings.HasPrefix(loc, "/dashboard?error=") {
			t.Errorf("Location = %q, want /dashboard?error=...", loc)
		}
	})
}

func TestTaskMutations_NotFound(t *testing.T) {
	// A task owned by someone else is indistinguishable from a missing
	// one: the handler must answer 404, never redirect to foreign data.
	tasks := &mockTaskPort{
		completeFunc: func(context.Context, string, string) error { return errors.New("task not found") },
		deleteFunc:   func(context.Context, string, string) error { return errors.New("task not found") },
		getFunc: func(context.Context, string, string) (*task.TaskResponse, error) {
			return nil, errors.New("task not found")
		},
		updateFunc: func(context.Context, task.UpdateTaskRequest) (*task.TaskResponse, error) {
			return nil, errors.New("task not found")
		},
	}
	app := newTestApp(t, validSession("user-b", "mallory"), tasks, &mockMailerPort{}, &mockReminderPort{})

	requests := []*http.Request{
		authedRequest("POST", "/tasks/t1/complete", url.Values{}),
		authedRequest("POST", "/tasks/t1/delete", url.Values{}),
		authedRequest("GET", "/tasks/t1/edit", nil),
		authedRequest("POST", "/tasks/t1/edit", url.Values{"title": {"x"}, "priority": {"Low"}}),
	}

	for _, req := range requests {
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test(%s %s) error = %v", req.Method, req.URL.Path, err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s %s status = %v, want %v", req.Method, req.URL.Path, resp.StatusCode, http.StatusNotFound)
		}
		resp.Body.Close()
	}
}

func TestSignup(t *testing.T) {
	t.Run("success sets cookie, sends welcome mail, redirects", func(t *testing.T) {
		authPort := &mockAuthPort{
			signupFunc: func(_ context.Context, username, email, password, confirm string) (*auth.SignupResponse, error) {
				return &auth.SignupResponse{
					ID: "u1", Username: username, Email: email, SessionToken: "fresh-token",
				}, nil
			},
		}
		mail := &mockMailerPort{}
		app := newTestApp(t, authPort, &mockTaskPort{}, mail, &mockReminderPort{})

		form := url.Values{
			"username":  {"alice"},
			"email":     {"alice@example.com"},
			"password1": {"password123"},
			"password2": {"password123"},
		}
		req := httptest.NewRequest("POST", "/signup", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusSeeOther)
		}
		if got := resp.Header.Get("Location"); got != "/dashboard" {
			t.Errorf("Location = %q, want /dashboard (auto-login)", got)
		}

		var sessionSet bool
		for _, c := range resp.Cookies() {
			if c.Name == SessionCookieName && c.Value == "fresh-token" {
				sessionSet = true
			}
		}
		if !sessionSet {
			t.Error("session cookie not set after signup")
		}

		if len(mail.sent) != 1 || mail.sent[0] != "alice@example.com" {
			t.Errorf("welcome mail recipients = %v, want [alice@example.com]", mail.sent)
		}
	})

	t.Run("password mismatch redirects back with error", func(t *testing.T) {
		authPort := &mockAuthPort{
			signupFunc: func(context.Context, string, string, string, string) (*auth.SignupResponse, error) {
				return nil, errors.New("passwords do not match")
			},
		}
		mail := &mockMailerPort{}
		app := newTestApp(t, authPort, &mockTaskPort{}, mail, &mockReminderPort{})

		form := url.Values{
			"username":  {"alice"},
			"email":     {"alice@example.com"},
			"password1": {"password123"},
			"password2": {"different"},
		}
		req := httptest.NewRequest("POST", "/signup", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusSeeOther)
		}
		loc := resp.Header.Get("Location")
		if !strings.HasPrefix(loc, "/signup?error=") {
			t.Errorf("Location = %q, want /signup?error=...", loc)
		}
		if !strings.Contains(loc, url.QueryEscape("Passwords do not match")) {
			t.Errorf("Location %q missing mismatch message", loc)
		}
		if len(mail.sent) != 0 {
			t.Errorf("welcome mail sent on failed signup: %v", mail.sent)
		}
	})

	t.Run("welcome mail failure does not fail the signup", func(t *testing.T) {
		authPort := &mockAuthPort{
			signupFunc: func(_ context.Context, username, email, _, _ string) (*auth.SignupResponse, error) {
				return &auth.SignupResponse{ID: "u1", Username: username, Email: email, SessionToken: "fresh-token"}, nil
			},
		}
		mail := &mockMailerPort{sendErr: errors.New("relay down")}
		app := newTestApp(t, authPort, &mockTaskPort{}, mail, &mockReminderPort{})

		form := url.Values{
			"username":  {"alice"},
			"email":     {"alice@example.com"},
			"password1": {"password123"},
			"password2": {"password123"},
		}
		req := httptest.NewRequest("POST", "/signup", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()

		if got := resp.Header.Get("Location"); got != "/dashboard" {
			t.Errorf("Location = %q, want /dashboard despite mail failure", got)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("failure shows generic message", func(t *testing.T) {
		authPort := &mockAuthPort{
			loginFunc: func(context.Context, string, string) (string, error) {
				return "", errors.New("invalid username or password")
			},
		}
		app := newTestApp(t, authPort, &mockTaskPort{}, &mockMailerPort{}, &mockReminderPort{})

		form := url.Values{"username": {"nobody"}, "password": {"whatever"}}
		req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()

		loc := resp.Header.Get("Location")
		want := "/login?error=" + url.QueryEscape("Invalid credentials")
		if loc != want {
			t.Errorf("Location = %q, want %q (no account enumeration)", loc, want)
		}
	})

	t.Run("success sets cookie and redirects", func(t *testing.T) {
		authPort := &mockAuthPort{
			loginFunc: func(context.Context, string, string) (string, error) {
				return "session-token", nil
			},
		}
		app := newTestApp(t, authPort, &mockTaskPort{}, &mockMailerPort{}, &mockReminderPort{})

		form := url.Values{"username": {"alice"}, "password": {"password123"}}
		req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		defer resp.Body.Close()

		if got := resp.Header.Get("Location"); got != "/dashboard" {
			t.Errorf("Location = %q, want /dashboard", got)
		}
		var sessionSet bool
		for _, c := range resp.Cookies() {
			if c.Name == SessionCookieName && c.Value == "session-token" {
				sessionSet = true
			}
		}
		if !sessionSet {
			t.Error("session cookie not set after login")
		}
	})
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, validSession("user-123", "alice"), &mockTaskPort{}, &mockMailerPort{}, &mockReminderPort{})

	resp, err := app.Test(authedRequest("GET", "/logout", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Location"); got != "/login" {
		t.Errorf("Location = %q, want /login", got)
	}
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared on logout")
	}
}

func TestRunReminders(t *testing.T) {
	reminders := &mockReminderPort{
		runFunc: func(context.Context) (*reminder.RunResponse, error) {
			return &reminder.RunResponse{Due: 3, Sent: 2, Skipped: 1}, nil
		},
	}
	app := newTestApp(t, validSession("user-123", "alice"), &mockTaskPort{}, &mockMailerPort{}, reminders)

	resp, err := app.Test(authedRequest("GET", "/reminders/run", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Reminders sent: 2") {
		t.Errorf("body = %q, want reminder summary", body)
	}
}

func TestHomeRedirect(t *testing.T) {
	app := newTestApp(t, validSession("user-123", "alice"), &mockTaskPort{}, &mockMailerPort{}, &mockReminderPort{})

	resp, err := app.Test(authedRequest("GET", "/", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Location"); got != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", got)
	}
}
