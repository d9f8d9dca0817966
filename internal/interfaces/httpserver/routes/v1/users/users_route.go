package users

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crm-server/internal/application/audit"
	"crm-server/internal/domain"
	"crm-server/internal/domain/user"
	"crm-server/internal/interfaces/httpserver/handlers/userhandler"
	"crm-server/internal/interfaces/httpserver/middlewares"
	"crm-server/internal/interfaces/httpserver/requests"
	"crm-server/internal/interfaces/httpserver/requests/userreq"
	"crm-server/internal/interfaces/httpserver/responses"
	"crm-server/internal/utils/platformerrors"
)

// UsersRoute handles user management routes
type UsersRoute struct {
	handler *userhandler.UserHandler
	auditor *audit.AdminAuditLogger
}

// NewUsersRoute creates a new users route
func NewUsersRoute(handler *userhandler.UserHandler, auditor *audit.AdminAuditLogger) *UsersRoute {
	return &UsersRoute{handler: handler, auditor: auditor}
}

// RegisterRouter registers user routes on the authenticated router
func (r *UsersRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/users/me", r.getMe)

	adminOnly := middlewares.RequireRoles(domain.RoleAdmin)
	users := router.Group("/users", adminOnly)
	users.GET("", r.listUsers)
	users.GET("/:user_id", r.getUser)
	users.PATCH("/:user_id", r.updateUser)
	users.DELETE("/:user_id", r.deleteUser)
}

// getMe godoc
// @Summary Get the calling user's profile
// @Description Returns the profile of the authenticated caller. Available to every role.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} userres.UserResponse "The caller's profile"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/users/me [get]
func (r *UsersRoute) getMe(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "7d3a9f1c-5e8b-4b2e-a6c4-9b1f7e3d5a20")
		return
	}

	resp, err := r.handler.GetUser(reqCtx.Request.Context(), principal.PublicID)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get profile")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// listUsers godoc
// @Summary List users
// @Description Lists user accounts with optional search, role and active filters. Admin only.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Param search query string false "Match against username, email and names"
// @Param role query string false "Filter by role (ADMIN, MANAGER, SALES_REP)"
// @Param active query bool false "Filter by active flag"
// @Param limit query int false "Maximum number of users to return"
// @Param after query string false "Return users created after the given cursor"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} userres.UserListResponse "Paginated users"
// @Failure 400 {object} responses.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 403 {object} responses.ErrorResponse "Forbidden - caller is not an admin"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/users [get]
func (r *UsersRoute) listUsers(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	var filter user.Filter
	if search := strings.TrimSpace(reqCtx.Query("search")); search != "" {
		filter.Search = &search
	}
	if raw := reqCtx.Query("role"); raw != "" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unknown role", "1e6c9b3a-8f2d-4d7e-b4a1-5c9e2f7d8b30")
			return
		}
		filter.Role = &role
	}
	if raw := reqCtx.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	resp, err := r.handler.ListUsers(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list users")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// getUser godoc
// @Summary Get a user
// @Description Returns a single user account by its public ID. Admin only.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User public ID"
// @Success 200 {object} userres.UserResponse "The user"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 403 {object} responses.ErrorResponse "Forbidden - caller is not an admin"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/users/{user_id} [get]
func (r *UsersRoute) getUser(reqCtx *gin.Context) {
	resp, err := r.handler.GetUser(reqCtx.Request.Context(), reqCtx.Param("user_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get user")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// updateUser godoc
// @Summary Update a user
// @Description Patches a user account. Role changes and deactivation take effect on the user's next request. Admin only.
// @Tags Users API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user_id path string true "User public ID"
// @Param request body userreq.UpdateUserRequest true "Fields to update"
// @Success 200 {object} userres.UserResponse "The updated user"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 403 {object} responses.ErrorResponse "Forbidden - caller is not an admin"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Failure 409 {object} responses.ErrorResponse "Email already registered"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/users/{user_id} [patch]
func (r *UsersRoute) updateUser(reqCtx *gin.Context) {
	var req userreq.UpdateUserRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "b8e1c4a7-3f9d-4a6e-8c2b-7d5f1e9a3c70")
		return
	}

	resp, err := r.handler.UpdateUser(reqCtx.Request.Context(), reqCtx.Param("user_id"), req)
	r.logAdminAction(reqCtx, "user.update", reqCtx.Param("user_id"), req, err)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update user")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes a user account. The account's tokens stop working immediately because every request rechecks the stored user. Admin only.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User public ID"
// @Success 200 {object} userres.UserDeletedResponse "Delete confirmation"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 403 {object} responses.ErrorResponse "Forbidden - caller is not an admin"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/users/{user_id} [delete]
func (r *UsersRoute) deleteUser(reqCtx *gin.Context) {
	resp, err := r.handler.DeleteUser(reqCtx.Request.Context(), reqCtx.Param("user_id"))
	r.logAdminAction(reqCtx, "user.delete", reqCtx.Param("user_id"), nil, err)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete user")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

func (r *UsersRoute) logAdminAction(reqCtx *gin.Context, action, resourceID string, payload any, actionErr error) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		return
	}

	status := http.StatusOK
	if actionErr != nil {
		status = http.StatusInternalServerError
	}

	r.auditor.Log(reqCtx.Request.Context(), audit.AdminAuditEntry{
		AdminUserID: principal.PublicID,
		AdminEmail:  principal.Email,
		Action:      action,
		Resource:    "user",
		ResourceID:  resourceID,
		Payload:     payload,
		StatusCode:  status,
		IPAddress:   reqCtx.ClientIP(),
		UserAgent:   reqCtx.Request.UserAgent(),
		Error:       actionErr,
	})
}
