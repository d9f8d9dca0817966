package main

import (
	"github.com/google/wire"

	"crm-server/internal/config"
	"crm-server/internal/domain/analytics"
	"crm-server/internal/domain/contact"
	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/notify"
	"crm-server/internal/domain/task"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/auth"
	"crm-server/internal/infrastructure/logger"
)

// serviceProvider provides all domain services
var serviceProvider = wire.NewSet(
	provideUserService,
	customer.NewService,
	lead.NewService,
	contact.NewService,
	provideTaskService,
	analytics.NewService,
)

func provideUserService(
	repo user.Repository,
	hasher *auth.PasswordHasher,
	codec *auth.TokenCodec,
	notifier notify.Notifier,
	cfg *config.Config,
) *user.Service {
	return user.NewService(repo, hasher, codec, notifier, cfg.OperatorEmail, logger.GetLogger())
}

func provideTaskService(repo task.Repository, users user.Repository, notifier notify.Notifier) *task.Service {
	return task.NewService(repo, users, notifier, logger.GetLogger())
}
