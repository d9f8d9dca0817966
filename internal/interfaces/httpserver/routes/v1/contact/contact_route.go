package contact

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crm-server/internal/interfaces/httpserver/handlers/contacthandler"
	"crm-server/internal/interfaces/httpserver/requests"
	"crm-server/internal/interfaces/httpserver/requests/contactreq"
	"crm-server/internal/interfaces/httpserver/responses"
	"crm-server/internal/utils/platformerrors"
)

// ContactRoute handles contact routes
type ContactRoute struct {
	handler *contacthandler.ContactHandler
}

// NewContactRoute creates a new contact route
func NewContactRoute(handler *contacthandler.ContactHandler) *ContactRoute {
	return &ContactRoute{handler: handler}
}

// RegisterRouter registers contact routes on the authenticated router
func (r *ContactRoute) RegisterRouter(router gin.IRouter) {
	contacts := router.Group("/contacts")
	contacts.POST("", r.createContact)
	contacts.GET("", r.listContacts)
	contacts.GET("/:contact_id", r.getContact)
	contacts.PATCH("/:contact_id", r.updateContact)
	contacts.DELETE("/:contact_id", r.deleteContact)
}

// createContact godoc
// @Summary Create a contact
// @Description Creates a contact person attached to an existing customer. The customer is referenced by its public ID.
// @Tags Contacts API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body contactreq.CreateContactRequest true "Contact fields"
// @Success 201 {object} contactres.ContactResponse "The created contact"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Customer not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/contacts [post]
func (r *ContactRoute) createContact(reqCtx *gin.Context) {
	var req contactreq.CreateContactRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "3e9b5c1a-7f2d-4e8a-b6c4-1d7f9e3a5c20")
		return
	}

	resp, err := r.handler.CreateContact(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create contact")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}

// listContacts godoc
// @Summary List contacts
// @Description Lists contacts with optional search and customer scoping.
// @Tags Contacts API
// @Security BearerAuth
// @Produce json
// @Param search query string false "Match against first name, last name and email"
// @Param customer_id query string false "Only contacts of the given customer public ID"
// @Param limit query int false "Maximum number of contacts to return"
// @Param after query string false "Return contacts created after the given cursor"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} contactres.ContactListResponse "Paginated contacts"
// @Failure 400 {object} responses.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Customer not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/contacts [get]
func (r *ContactRoute) listContacts(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	var search *string
	if trimmed := strings.TrimSpace(reqCtx.Query("search")); trimmed != "" {
		search = &trimmed
	}
	var customerID *string
	if raw := reqCtx.Query("customer_id"); raw != "" {
		customerID = &raw
	}

	resp, err := r.handler.ListContacts(reqCtx.Request.Context(), search, customerID, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list contacts")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// getContact godoc
// @Summary Get a contact
// @Description Returns a single contact by its public ID.
// @Tags Contacts API
// @Security BearerAuth
// @Produce json
// @Param contact_id path string true "Contact public ID"
// @Success 200 {object} contactres.ContactResponse "The contact"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Contact not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/contacts/{contact_id} [get]
func (r *ContactRoute) getContact(reqCtx *gin.Context) {
	resp, err := r.handler.GetContact(reqCtx.Request.Context(), reqCtx.Param("contact_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get contact")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// updateContact godoc
// @Summary Update a contact
// @Description Patches a contact. A contact always keeps at least one name field.
// @Tags Contacts API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param contact_id path string true "Contact public ID"
// @Param request body contactreq.UpdateContactRequest true "Fields to update"
// @Success 200 {object} contactres.ContactResponse "The updated contact"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Contact not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/contacts/{contact_id} [patch]
func (r *ContactRoute) updateContact(reqCtx *gin.Context) {
	var req contactreq.UpdateContactRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "6b1d8e3c-2a9f-4c7e-a5b3-8f2d6e9c1a40")
		return
	}

	resp, err := r.handler.UpdateContact(reqCtx.Request.Context(), reqCtx.Param("contact_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to update contact")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// deleteContact godoc
// @Summary Delete a contact
// @Description Removes a contact.
// @Tags Contacts API
// @Security BearerAuth
// @Produce json
// @Param contact_id path string true "Contact public ID"
// @Success 200 {object} contactres.ContactDeletedResponse "Delete confirmation"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized - missing or invalid token"
// @Failure 404 {object} responses.ErrorResponse "Contact not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/contacts/{contact_id} [delete]
func (r *ContactRoute) deleteContact(reqCtx *gin.Context) {
	resp, err := r.handler.DeleteContact(reqCtx.Request.Context(), reqCtx.Param("contact_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete contact")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}
