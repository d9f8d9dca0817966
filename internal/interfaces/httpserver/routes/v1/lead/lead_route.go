package lead

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crm-server/internal/domain"
	leaddomain "crm-server/internal/domain/lead"
	"crm-server/internal/interfaces/httpserver/handlers/leadhandler"
	"crm-server/internal/interfaces/httpserver/middlewares"
	"crm-server/internal/interfaces/httpserver/requests"
	"crm-server/internal/interfaces/httpserver/requests/leadreq"
	"crm-server/internal/interfaces/httpserver/responses"
	"crm-server/internal/utils/platformerrors"
)

// LeadRoute handles lead routes
type LeadRoute struct {
	handler *leadhandler.LeadHandler
}

// NewLeadRoute creates a new lead route
func NewLeadRoute(handler *leadhandler.LeadHandler) *LeadRoute {
	return &LeadRoute{handler: handler}
}

// RegisterRouter registers lead routes on the authenticated router
func (r *LeadRoute) RegisterRouter(router gin.IRouter) {
	leads := router.Group("/leads")
	leads.POST("", r.createLead)
	leads.GET("", r.listLeads)
	leads.GET("/:lead_id", r.getLead)
	leads.PATCH("/:lead_id", r.updateLead)
	leads.POST("/:lead_id/status", r.transitionLead)
	leads.DELETE("/:lead_id", middlewares.RequireRoles(domain.RoleAdmin, domain.RoleManager), r.deleteLead)
}

// createLead godoc
// @Summary Create a lead
// @Description Creates a lead owned by the calling user. New leads start in the NEW status.
// @Tags Leads API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body leadreq.CreateLeadRequest true "Lead fields"
// @Success 201 {object} leadres.LeadResponse "The created lead"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/leads [post]
func (r *LeadRoute) createLead(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "2b8f4c1e-7d9a-4e3b-a1c6-5d2e8f7b9a30")
		return
	}

	var req leadreq.CreateLeadRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "9d1e5a7c-3b8f-4c2e-b7a4-6e9f1d3c8b50")
		return
	}

	resp, err := r.handler.CreateLead(reqCtx.Request.Context(), principal.UserID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create lead")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// listLeads godoc
// @Summary List leads
// @Description Lists leads with optional search, status and owner filters.
// @Tags Leads API
// @Security BearerAuth
// @Produce json
// @Param search query string false "Match against title, contact name and contact email"
// @Param status query string false "Filter by status (NEW, CONTACTED, QUALIFIED, CONVERTED, LOST)"
// @Param owner query string false "Set to 'me' to list only leads owned by the caller"
// @Param limit query int false "Maximum number of leads to return"
// @Param after query string false "Return leads created after the given cursor"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} leadres.LeadListResponse "Paginated leads"
// @Failure 400 {object} responses.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/leads [get]
func (r *LeadRoute) listLeads(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	var filter leaddomain.Filter
	if search := strings.TrimSpace(reqCtx.Query("search")); search != "" {
		filter.Search = &search
	}
	if raw := reqCtx.Query("status"); raw != "" {
		status, ok := leaddomain.ParseStatus(raw)
		if !ok {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unknown lead status", "e7a3c9b1-4f8d-4b6e-a2c5-8d1f7e9b3c40")
			return
		}
		filter.Status = &status
	}
	if reqCtx.Query("owner") == "me" {
		principal, ok := middlewares.PrincipalFromContext(reqCtx)
		if !ok {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "5f2b8d4a-9e1c-4a7e-b3d6-2c8e5f9a1b70")
			return
		}
		filter.OwnerID = &principal.UserID
	}

	resp, err := r.handler.ListLeads(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list leads")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// getLead godoc
// @Summary Get a lead
// @Description Returns a single lead by its public ID.
// @Tags Leads API
// @Security BearerAuth
// @Produce json
// @Param lead_id path string true "Lead public ID"
// @Success 200 {object} leadres.LeadResponse "The lead"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Lead not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/leads/{lead_id} [get]
func (r *LeadRoute) getLead(reqCtx *gin.Context) {
	resp, err := r.handler.GetLead(reqCtx.Request.Context(), reqCtx.Param("lead_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get lead")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// updateLead godoc
// @Summary Update a lead
// @Description Patches a lead's descriptive fields. Status changes go through the status endpoint instead.
// @Tags Leads API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param lead_id path string true "Lead public ID"
// @Param request body leadreq.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} leadres.LeadResponse "The updated lead"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Lead not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/leads/{lead_id} [patch]
func (r *LeadRoute) updateLead(reqCtx *gin.Context) {
	var req leadreq.UpdateLeadRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "c4e8b2a6-1d9f-4f3e-a7b5-9e2c6d8f1a20")
		return
	}

	resp, err := r.handler.UpdateLead(reqCtx.Request.Context(), reqCtx.Param("lead_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update lead")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// transitionLead godoc
// @Summary Transition a lead's status
// @Description Moves a lead to a new status. Transitioning to CONVERTED creates a customer from the lead's contact data when the lead is not already linked to one. CONVERTED is terminal.
// @Tags Leads API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param lead_id path string true "Lead public ID"
// @Param request body leadreq.TransitionLeadRequest true "Target status"
// @Success 200 {object} leadres.LeadResponse "The lead after the transition"
// @Failure 400 {object} responses.ErrorResponse "Invalid status or transition out of CONVERTED"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Lead not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/leads/{lead_id}/status [post]
func (r *LeadRoute) transitionLead(reqCtx *gin.Context) {
	var req leadreq.TransitionLeadRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "a9c5e1b7-6f2d-4d8e-b4a3-7c1e9f5d2b80")
		return
	}

	resp, err := r.handler.TransitionLead(reqCtx.Request.Context(), reqCtx.Param("lead_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to transition lead")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// deleteLead godoc
// @Summary Delete a lead
// @Description Removes a lead. Restricted to admins and managers.
// @Tags Leads API
// @Security BearerAuth
// @Produce json
// @Param lead_id path string true "Lead public ID"
// @Success 200 {object} leadres.LeadDeletedResponse "Delete confirmation"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 403 {object} responses.ErrorResponse "Forbidden - sales reps cannot delete leads"
// @Failure 404 {object} responses.ErrorResponse "Lead not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/leads/{lead_id} [delete]
func (r *LeadRoute) deleteLead(reqCtx *gin.Context) {
	resp, err := r.handler.DeleteLead(reqCtx.Request.Context(), reqCtx.Param("lead_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete lead")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}
