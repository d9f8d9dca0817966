package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-server/internal/domain"
	"crm-server/internal/interfaces/httpserver/handlers/analyticshandler"
	"crm-server/internal/interfaces/httpserver/middlewares"
	"crm-server/internal/interfaces/httpserver/responses"
)

// AnalyticsRoute handles analytics routes
type AnalyticsRoute struct {
	handler *analyticshandler.AnalyticsHandler
}

// NewAnalyticsRoute creates a new analytics route
func NewAnalyticsRoute(handler *analyticshandler.AnalyticsHandler) *AnalyticsRoute {
	return &AnalyticsRoute{handler: handler}
}

// RegisterRouter registers analytics routes on the authenticated router
func (r *AnalyticsRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/analytics", middlewares.RequireRoles(domain.RoleAdmin, domain.RoleManager))
	group.GET("/summary", r.getSummary)
}

// getSummary godoc
// @Summary Get CRM summary figures
// @Description Returns aggregate counts: total customers, leads per status, tasks per status and active users. Restricted to admins and managers.
// @Tags Analytics API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} analyticsres.SummaryResponse "Aggregate figures"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 403 {object} responses.ErrorResponse "Forbidden - sales reps cannot read analytics"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/analytics/summary [get]
func (r *AnalyticsRoute) getSummary(reqCtx *gin.Context) {
	resp, err := r.handler.GetSummary(reqCtx.Request.Context())
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to compute summary")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}
