package repository

import (
	"crm-server/internal/infrastructure/database/repository/contactrepo"
	"crm-server/internal/infrastructure/database/repository/customerrepo"
	"crm-server/internal/infrastructure/database/repository/leadrepo"
	"crm-server/internal/infrastructure/database/repository/taskrepo"
	"crm-server/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	customerrepo.NewCustomerGormRepository,
	leadrepo.NewLeadGormRepository,
	taskrepo.NewTaskGormRepository,
	contactrepo.NewContactGormRepository,
)
