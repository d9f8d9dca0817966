package meta

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-server/internal/domain"
	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/task"
)

// MetaRoute exposes the fixed enumerations clients need to render forms.
type MetaRoute struct{}

// NewMetaRoute creates a new meta route
func NewMetaRoute() *MetaRoute {
	return &MetaRoute{}
}

// RegisterRouter registers meta routes on the public router
func (r *MetaRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/meta")
	group.GET("/roles", getRoles)
	group.GET("/lead-statuses", getLeadStatuses)
	group.GET("/task-statuses", getTaskStatuses)
}

// getRoles godoc
// @Summary List user roles
// @Description Returns every valid user role.
// @Tags Meta API
// @Produce json
// @Success 200 {object} object "List of roles"
// @Router /v1/meta/roles [get]
func getRoles(c *gin.Context) {
	roles := domain.Roles()
	data := make([]string, len(roles))
	for i, role := range roles {
		data[i] = string(role)
	}
	c.JSON(http.StatusOK, gin.H{"object": "list", "data": data})
}

// getLeadStatuses godoc
// @Summary List lead statuses
// @Description Returns every valid lead status in pipeline order.
// @Tags Meta API
// @Produce json
// @Success 200 {object} object "List of lead statuses"
// @Router /v1/meta/lead-statuses [get]
func getLeadStatuses(c *gin.Context) {
	statuses := lead.Statuses()
	data := make([]string, len(statuses))
	for i, status := range statuses {
		data[i] = string(status)
	}
	c.JSON(http.StatusOK, gin.H{"object": "list", "data": data})
}

// getTaskStatuses godoc
// @Summary List task statuses
// @Description Returns every valid task status.
// @Tags Meta API
// @Produce json
// @Success 200 {object} object "List of task statuses"
// @Router /v1/meta/task-statuses [get]
func getTaskStatuses(c *gin.Context) {
	statuses := task.Statuses()
	data := make([]string, len(statuses))
	for i, status := range statuses {
		data[i] = string(status)
	}
	c.JSON(http.StatusOK, gin.H{"object": "list", "data": data})
}
