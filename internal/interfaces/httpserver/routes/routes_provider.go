package routes

import (
	"github.com/google/wire"

	"crm-server/internal/interfaces/httpserver/routes/auth"
	v1 "crm-server/internal/interfaces/httpserver/routes/v1"
	"crm-server/internal/interfaces/httpserver/routes/v1/analytics"
	"crm-server/internal/interfaces/httpserver/routes/v1/contact"
	"crm-server/internal/interfaces/httpserver/routes/v1/customer"
	"crm-server/internal/interfaces/httpserver/routes/v1/lead"
	"crm-server/internal/interfaces/httpserver/routes/v1/meta"
	"crm-server/internal/interfaces/httpserver/routes/v1/task"
	"crm-server/internal/interfaces/httpserver/routes/v1/users"
)

var RouteProvider = wire.NewSet(
	auth.NewAuthRoute,
	v1.NewV1Route,
	users.NewUsersRoute,
	customer.NewCustomerRoute,
	lead.NewLeadRoute,
	task.NewTaskRoute,
	contact.NewContactRoute,
	analytics.NewAnalyticsRoute,
	meta.NewMetaRoute,
)
