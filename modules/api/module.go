package api

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"github.com/Sangrampatil04/task-manager/config"
	"github.com/Sangrampatil04/task-manager/modules/auth"
	"github.com/Sangrampatil04/task-manager/modules/mailer"
	"github.com/Sangrampatil04/task-manager/modules/reminder"
	"github.com/Sangrampatil04/task-manager/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// APIModule is the HTTP web surface of the application.
type APIModule struct {
	cfg             config.Config
	app             *fiber.App
	authAdapter     auth.AuthPort
	taskAdapter     task.TaskPort
	mailAdapter     mailer.MailerPort
	reminderAdapter reminder.ReminderPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg config.Config) *APIModule {
	return &APIModule{
		cfg: cfg,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task", "mailer", "reminder"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskAdapter = task.NewTaskAdapter(container)
	case "mailer":
		m.mailAdapter = mailer.NewMailerAdapter(container)
	case "reminder":
		m.reminderAdapter = reminder.NewReminderAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil || m.taskAdapter == nil || m.mailAdapter == nil || m.reminderAdapter == nil {
		return fmt.Errorf("api dependencies not set")
	}

	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return fmt.Errorf("failed to load views: %w", err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Views:                 engine,
		ErrorHandler:          errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New(cors.Config{
		AllowOrigins: m.cfg.AllowedOrigins,
	}))

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(m.cfg.ListenAddr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.cfg.ListenAddr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.cfg.ListenAddr,
		},
	}
}

// setupRoutes configures the web routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authAdapter, m.taskAdapter, m.mailAdapter, m.reminderAdapter, m.cfg.SessionTTL)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// Public account routes
	m.app.Get("/signup", handlers.SignupForm)
	m.app.Post("/signup", handlers.Signup)
	m.app.Get("/login", handlers.LoginForm)
	m.app.Post("/login", handlers.Login)

	// Everything below requires a logged-in session.
	guard := RequireSession(m.authAdapter)

	m.app.Get("/", guard, handlers.Home)
	m.app.Get("/dashboard", guard, handlers.Dashboard)
	m.app.Post("/dashboard", guard, handlers.CreateTask)

	m.app.Get("/tasks/:id/edit", guard, handlers.EditTaskForm)
	m.app.Post("/tasks/:id/edit", guard, handlers.UpdateTask)
	m.app.Get("/tasks/:id/complete", guard, handlers.CompleteTask)
	m.app.Post("/tasks/:id/complete", guard, handlers.CompleteTask)
	m.app.Get("/tasks/:id/delete", guard, handlers.DeleteTask)
	m.app.Post("/tasks/:id/delete", guard, handlers.DeleteTask)

	m.app.Get("/logout", guard, handlers.Logout)
	m.app.Post("/logout", guard, handlers.Logout)

	m.app.Get("/reminders/run", guard, handlers.RunReminders)
	m.app.Post("/reminders/run", guard, handlers.RunReminders)
}

// errorHandler renders Fiber errors as plain responses.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).SendString(message)
}
