package main

import (
	"context"

	"crm-server/internal/config"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/logger"
)

type DataInitializer struct {
	Users *user.Service
}

// Install seeds the bootstrap admin account when none exists yet.
func (d *DataInitializer) Install(ctx context.Context) error {
	cfg := config.GetGlobal()
	log := logger.GetLogger()

	if cfg.DefaultAdminPassword == "" {
		log.Warn().Msg("DEFAULT_ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	return d.Users.EnsureAdmin(ctx, cfg.DefaultAdminUsername, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword)
}
