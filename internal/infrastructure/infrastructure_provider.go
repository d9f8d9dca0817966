package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"crm-server/internal/application/audit"
	"crm-server/internal/config"
	"crm-server/internal/domain/notify"
	"crm-server/internal/infrastructure/auth"
	"crm-server/internal/infrastructure/crontab"
	"crm-server/internal/infrastructure/database"
	"crm-server/internal/infrastructure/database/repository"
	"crm-server/internal/infrastructure/logger"
	"crm-server/internal/infrastructure/notifier"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideTokenCodec builds the JWT codec from the configured secret and TTL.
func ProvideTokenCodec(cfg *config.Config) (*auth.TokenCodec, error) {
	return auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL, cfg.ServiceName)
}

// ProvidePasswordHasher provides the bcrypt password hasher.
func ProvidePasswordHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasher()
}

// ProvideNotifier wires the webhook notifier.
func ProvideNotifier(cfg *config.Config, log zerolog.Logger) notify.Notifier {
	return notifier.NewWebhookNotifier(cfg, log)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB         *gorm.DB
	TokenCodec *auth.TokenCodec
	Logger     zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	tokenCodec *auth.TokenCodec,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:         db,
		TokenCodec: tokenCodec,
		Logger:     logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Credentials and tokens
	ProvideTokenCodec,
	ProvidePasswordHasher,

	// Outbound notifications
	ProvideNotifier,

	// Logger
	logger.GetLogger,

	// Crontab for task reminders
	crontab.NewCrontab,

	// Admin action audit trail
	audit.NewAdminAuditLogger,

	// Infrastructure struct
	NewInfrastructure,
)
