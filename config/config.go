// Package config holds the immutable application configuration.
// It is loaded once in main and passed to every module constructor,
// never read from ambient globals.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the application configuration, populated from environment
// variables with defaults suitable for local development.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `env:"TM_LISTEN_ADDR" env-default:":3000"`

	// DBPath is the SQLite database file path.
	DBPath string `env:"TM_DB_PATH" env-default:"task_manager.db"`

	// SessionSecret signs session tokens. Change in production.
	SessionSecret string `env:"TM_SESSION_SECRET" env-default:"dev-session-secret-change-me"`

	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration `env:"TM_SESSION_TTL" env-default:"168h"`

	// SMTPHost enables real mail delivery when set. When empty the
	// mailer logs outgoing messages instead of sending them.
	SMTPHost string `env:"TM_SMTP_HOST" env-default:""`
	SMTPPort int    `env:"TM_SMTP_PORT" env-default:"587"`
	SMTPUser string `env:"TM_SMTP_USER" env-default:""`
	SMTPPass string `env:"TM_SMTP_PASS" env-default:""`

	// MailFrom is the sender address for welcome and reminder mail.
	MailFrom string `env:"TM_MAIL_FROM" env-default:"taskmanager@localhost"`

	// AllowedOrigins is the CORS allow list for the HTTP server.
	AllowedOrigins string `env:"TM_ALLOWED_ORIGINS" env-default:"*"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment config: %w", err)
	}
	return cfg, nil
}
