package handlers

import (
	"github.com/google/wire"

	"crm-server/internal/interfaces/httpserver/handlers/analyticshandler"
	"crm-server/internal/interfaces/httpserver/handlers/authhandler"
	"crm-server/internal/interfaces/httpserver/handlers/contacthandler"
	"crm-server/internal/interfaces/httpserver/handlers/customerhandler"
	"crm-server/internal/interfaces/httpserver/handlers/leadhandler"
	"crm-server/internal/interfaces/httpserver/handlers/taskhandler"
	"crm-server/internal/interfaces/httpserver/handlers/userhandler"
)

var HandlerProvider = wire.NewSet(
	authhandler.NewAuthHandler,
	userhandler.NewUserHandler,
	customerhandler.NewCustomerHandler,
	leadhandler.NewLeadHandler,
	taskhandler.NewTaskHandler,
	contacthandler.NewContactHandler,
	analyticshandler.NewAnalyticsHandler,
)
