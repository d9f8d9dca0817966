package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// MinJWTSecretLength is the minimum accepted length for the token signing
// secret. Anything shorter is refused at startup.
const MinJWTSecretLength = 32

// Global singleton for components outside the wire graph (crontab, logger).
var globalConfig *Config

// Config holds all environment backed configuration for crm-api.
type Config struct {
	// HTTP Server
	HTTPPort  int     `env:"HTTP_PORT" envDefault:"8080"`
	PprofPort int     `env:"PPROF_PORT" envDefault:"6060"`
	RateLimit float64 `env:"RATE_LIMIT_PER_MINUTE" envDefault:"300"`

	// Database
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Auth
	JWTSecret string        `env:"JWT_SECRET,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"8h"`

	// Bootstrap admin account, created on first boot if no admin exists.
	DefaultAdminUsername string `env:"DEFAULT_ADMIN_USERNAME" envDefault:"admin"`
	DefaultAdminEmail    string `env:"DEFAULT_ADMIN_EMAIL" envDefault:"admin@localhost"`
	DefaultAdminPassword string `env:"DEFAULT_ADMIN_PASSWORD"`

	// Notifications
	NotifyWebhookURL string        `env:"NOTIFY_WEBHOOK_URL"`
	NotifyTimeout    time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	OperatorEmail    string        `env:"OPERATOR_EMAIL"`

	// Task reminders
	TaskReminderEnabled         bool          `env:"TASK_REMINDER_ENABLED" envDefault:"true"`
	TaskReminderIntervalMinutes int           `env:"TASK_REMINDER_INTERVAL_MINUTES" envDefault:"15"`
	TaskReminderWindow          time.Duration `env:"TASK_REMINDER_WINDOW" envDefault:"24h"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"crm-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"crm"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	EnableSwagger bool `env:"ENABLE_SWAGGER" envDefault:"true"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength)
	}
	if cfg.JWTTTL <= 0 {
		return nil, errors.New("JWT_TTL must be positive")
	}

	if cfg.NotifyWebhookURL != "" {
		if _, err := url.ParseRequestURI(cfg.NotifyWebhookURL); err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_WEBHOOK_URL: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance for components outside the
// wire graph.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
