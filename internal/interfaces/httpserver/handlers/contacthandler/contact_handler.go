package contacthandler

import (
	"context"
	"strconv"

	"crm-server/internal/domain/contact"
	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/query"
	"crm-server/internal/interfaces/httpserver/requests/contactreq"
	"crm-server/internal/interfaces/httpserver/responses/contactres"
	"crm-server/internal/utils/platformerrors"
)

type ContactHandler struct {
	contacts  *contact.Service
	customers *customer.Service
}

func NewContactHandler(contacts *contact.Service, customers *customer.Service) *ContactHandler {
	return &ContactHandler{contacts: contacts, customers: customers}
}

// CreateContact creates a contact attached to a customer
func (h *ContactHandler) CreateContact(ctx context.Context, req contactreq.CreateContactRequest) (*contactres.ContactResponse, error) {
	cust, err := h.customers.GetByPublicID(ctx, req.CustomerID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve customer")
	}

	c, err := h.contacts.Create(ctx, contact.CreateInput{
		CustomerID: cust.ID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create contact")
	}
	return contactres.NewContactResponse(c), nil
}

// GetContact retrieves a single contact
func (h *ContactHandler) GetContact(ctx context.Context, contactID string) (*contactres.ContactResponse, error) {
	c, err := h.contacts.GetByPublicID(ctx, contactID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get contact")
	}
	return contactres.NewContactResponse(c), nil
}

// ListContacts lists contacts with search, optional customer scoping and
// pagination. The customer filter takes the customer's public ID.
func (h *ContactHandler) ListContacts(ctx context.Context, search, customerID *string, pagination *query.Pagination) (*contactres.ContactListResponse, error) {
	filter := contact.Filter{Search: search}
	if customerID != nil {
		cust, err := h.customers.GetByPublicID(ctx, *customerID)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve customer")
		}
		filter.CustomerID = &cust.ID
	}

	// Fetch limit+1 to determine hasMore
	var requestedLimit *int
	if pagination != nil && pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	contacts, total, err := h.contacts.List(ctx, filter, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list contacts")
	}

	hasMore := false
	var nextCursor *string
	if requestedLimit != nil && len(contacts) > *requestedLimit {
		hasMore = true
		lastIndex := *requestedLimit - 1
		cursorValue := strconv.FormatUint(uint64(contacts[lastIndex].ID), 10)
		nextCursor = &cursorValue
		contacts = contacts[:*requestedLimit]
	}

	return contactres.NewContactListResponse(contacts, hasMore, nextCursor, total), nil
}

// UpdateContact patches a contact
func (h *ContactHandler) UpdateContact(ctx context.Context, contactID string, req contactreq.UpdateContactRequest) (*contactres.ContactResponse, error) {
	c, err := h.contacts.Update(ctx, contactID, contact.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update contact")
	}
	return contactres.NewContactResponse(c), nil
}

// DeleteContact removes a contact
func (h *ContactHandler) DeleteContact(ctx context.Context, contactID string) (*contactres.ContactDeletedResponse, error) {
	if err := h.contacts.Delete(ctx, contactID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete contact")
	}
	return &contactres.ContactDeletedResponse{
		ID:      contactID,
		Object:  "contact.deleted",
		Deleted: true,
	}, nil
}
