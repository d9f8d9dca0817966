package customer

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crm-server/internal/domain"
	customerdomain "crm-server/internal/domain/customer"
	"crm-server/internal/interfaces/httpserver/handlers/customerhandler"
	"crm-server/internal/interfaces/httpserver/middlewares"
	"crm-server/internal/interfaces/httpserver/requests"
	"crm-server/internal/interfaces/httpserver/requests/customerreq"
	"crm-server/internal/interfaces/httpserver/responses"
	"crm-server/internal/utils/platformerrors"
)

// CustomerRoute handles customer routes
type CustomerRoute struct {
	handler *customerhandler.CustomerHandler
}

// NewCustomerRoute creates a new customer route
func NewCustomerRoute(handler *customerhandler.CustomerHandler) *CustomerRoute {
	return &CustomerRoute{handler: handler}
}

// RegisterRouter registers customer routes on the authenticated router
func (r *CustomerRoute) RegisterRouter(router gin.IRouter) {
	customers := router.Group("/customers")
	customers.POST("", r.createCustomer)
	customers.GET("", r.listCustomers)
	customers.GET("/:customer_id", r.getCustomer)
	customers.PATCH("/:customer_id", r.updateCustomer)
	customers.DELETE("/:customer_id", middlewares.RequireRoles(domain.RoleAdmin, domain.RoleManager), r.deleteCustomer)
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates a customer record owned by the calling user.
// @Tags Customers API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body customerreq.CreateCustomerRequest true "Customer fields"
// @Success 201 {object} customerres.CustomerResponse "The created customer"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/customers [post]
func (r *CustomerRoute) createCustomer(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3c7e1a9d-4b8f-4d2e-a5c6-8f1b3e7d9a10")
		return
	}

	var req customerreq.CreateCustomerRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "6a2d8e4b-9c1f-4e7a-b3d5-1f8c6b2e9a40")
		return
	}

	resp, err := r.handler.CreateCustomer(reqCtx.Request.Context(), principal.UserID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create customer")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// listCustomers godoc
// @Summary List customers
// @Description Lists customers with optional search and cursor pagination. The search term matches name, company and email.
// @Tags Customers API
// @Security BearerAuth
// @Produce json
// @Param search query string false "Match against name, company and email"
// @Param owner query string false "Set to 'me' to list only customers owned by the caller"
// @Param limit query int false "Maximum number of customers to return"
// @Param after query string false "Return customers created after the given cursor"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} customerres.CustomerListResponse "Paginated customers"
// @Failure 400 {object} responses.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/customers [get]
func (r *CustomerRoute) listCustomers(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	var filter customerdomain.Filter
	if search := strings.TrimSpace(reqCtx.Query("search")); search != "" {
		filter.Search = &search
	}
	if reqCtx.Query("owner") == "me" {
		principal, ok := middlewares.PrincipalFromContext(reqCtx)
		if !ok {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "d4b9e2c7-6a1f-4c8e-9b3d-5e7f2a8c1d60")
			return
		}
		filter.OwnerID = &principal.UserID
	}

	resp, err := r.handler.ListCustomers(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list customers")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// getCustomer godoc
// @Summary Get a customer
// @Description Returns a single customer by its public ID.
// @Tags Customers API
// @Security BearerAuth
// @Produce json
// @Param customer_id path string true "Customer public ID"
// @Success 200 {object} customerres.CustomerResponse "The customer"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Customer not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/customers/{customer_id} [get]
func (r *CustomerRoute) getCustomer(reqCtx *gin.Context) {
	resp, err := r.handler.GetCustomer(reqCtx.Request.Context(), reqCtx.Param("customer_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get customer")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Patches a customer record. Absent fields are left untouched.
// @Tags Customers API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param customer_id path string true "Customer public ID"
// @Param request body customerreq.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} customerres.CustomerResponse "The updated customer"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Customer not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/customers/{customer_id} [patch]
func (r *CustomerRoute) updateCustomer(reqCtx *gin.Context) {
	var req customerreq.UpdateCustomerRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "8e5c1b9a-2d7f-4a4e-b6c3-9f2e7d1a5c80")
		return
	}

	resp, err := r.handler.UpdateCustomer(reqCtx.Request.Context(), reqCtx.Param("customer_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update customer")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Removes a customer record. Restricted to admins and managers.
// @Tags Customers API
// @Security BearerAuth
// @Produce json
// @Param customer_id path string true "Customer public ID"
// @Success 200 {object} customerres.CustomerDeletedResponse "Delete confirmation"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 403 {object} responses.ErrorResponse "Forbidden - sales reps cannot delete customers"
// @Failure 404 {object} responses.ErrorResponse "Customer not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/customers/{customer_id} [delete]
func (r *CustomerRoute) deleteCustomer(reqCtx *gin.Context) {
	resp, err := r.handler.DeleteCustomer(reqCtx.Request.Context(), reqCtx.Param("customer_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete customer")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}
