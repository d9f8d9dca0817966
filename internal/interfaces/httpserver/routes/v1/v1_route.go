package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-server/internal/config"
	"crm-server/internal/interfaces/httpserver/routes/v1/analytics"
	"crm-server/internal/interfaces/httpserver/routes/v1/contact"
	"crm-server/internal/interfaces/httpserver/routes/v1/customer"
	"crm-server/internal/interfaces/httpserver/routes/v1/lead"
	"crm-server/internal/interfaces/httpserver/routes/v1/meta"
	"crm-server/internal/interfaces/httpserver/routes/v1/task"
	"crm-server/internal/interfaces/httpserver/routes/v1/users"
)

type V1Route struct {
	users     *users.UsersRoute
	customers *customer.CustomerRoute
	leads     *lead.LeadRoute
	tasks     *task.TaskRoute
	contacts  *contact.ContactRoute
	analytics *analytics.AnalyticsRoute
	meta      *meta.MetaRoute
}

func NewV1Route(
	users *users.UsersRoute,
	customers *customer.CustomerRoute,
	leads *lead.LeadRoute,
	tasks *task.TaskRoute,
	contacts *contact.ContactRoute,
	analytics *analytics.AnalyticsRoute,
	meta *meta.MetaRoute,
) *V1Route {
	return &V1Route{
		users,
		customers,
		leads,
		tasks,
		contacts,
		analytics,
		meta,
	}
}

// RegisterRouter registers the authenticated v1 routes
func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")

	v1Route.users.RegisterRouter(v1Router)
	v1Route.customers.RegisterRouter(v1Router)
	v1Route.leads.RegisterRouter(v1Router)
	v1Route.tasks.RegisterRouter(v1Router)
	v1Route.contacts.RegisterRouter(v1Router)
	v1Route.analytics.RegisterRouter(v1Router)
}

// RegisterPublicRouter registers endpoints that do not require authentication
func (v1Route *V1Route) RegisterPublicRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Route.meta.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the current build version of the API server.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Version information"
// @Router /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}
