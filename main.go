package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Sangrampatil04/task-manager/config"
	"github.com/Sangrampatil04/task-manager/modules/api"
	"github.com/Sangrampatil04/task-manager/modules/auth"
	"github.com/Sangrampatil04/task-manager/modules/mailer"
	"github.com/Sangrampatil04/task-manager/modules/reminder"
	"github.com/Sangrampatil04/task-manager/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule(cfg))   // Independent module (accounts and sessions)
	app.Register(task.NewModule(cfg))   // Independent module (task storage)
	app.Register(mailer.NewModule(cfg)) // Independent module (outbound mail)
	app.Register(reminder.NewModule())  // Depends on task, auth, mailer
	app.Register(api.NewModule(cfg))    // Depends on all of the above

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Web UI (http://localhost%s):", cfg.ListenAddr)
	log.Println("")
	log.Println("  Public Pages:")
	log.Println("  GET/POST  /signup          - Create an account")
	log.Println("  GET/POST  /login           - Login")
	log.Println("  GET       /health          - Health check")
	log.Println("")
	log.Println("  Authenticated Pages (session cookie):")
	log.Println("  GET       /dashboard       - Task list, filters, progress stats")
	log.Println("  POST      /dashboard       - Create a task")
	log.Println("  GET/POST  /tasks/:id/edit  - Edit a task")
	log.Println("  POST      /tasks/:id/complete - Mark a task completed")
	log.Println("  POST      /tasks/:id/delete   - Delete a task")
	log.Println("  GET       /reminders/run   - Send due-date reminder emails")
	log.Println("  GET       /logout          - End the session")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
