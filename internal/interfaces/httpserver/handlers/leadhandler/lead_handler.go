package leadhandler

import (
	"context"
	"strconv"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/metrics"
	"crm-server/internal/interfaces/httpserver/requests/leadreq"
	"crm-server/internal/interfaces/httpserver/responses/leadres"
	"crm-server/internal/utils/platformerrors"
)

type LeadHandler struct {
	leads     *lead.Service
	customers *customer.Service
	users     *user.Service
}

func NewLeadHandler(leads *lead.Service, customers *customer.Service, users *user.Service) *LeadHandler {
	return &LeadHandler{leads: leads, customers: customers, users: users}
}

// resolveCustomer maps a customer public ID to its internal ID.
func (h *LeadHandler) resolveCustomer(ctx context.Context, publicID string) (*uint, error) {
	cust, err := h.customers.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve customer")
	}
	return &cust.ID, nil
}

// CreateLead creates a new lead owned by the calling user
func (h *LeadHandler) CreateLead(ctx context.Context, ownerID uint, req leadreq.CreateLeadRequest) (*leadres.LeadResponse, error) {
	var customerID *uint
	if req.CustomerID != nil {
		id, err := h.resolveCustomer(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = id
	}

	ld, err := h.leads.Create(ctx, lead.CreateInput{
		Title:          req.Title,
		Source:         req.Source,
		EstimatedValue: req.EstimatedValue,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Notes:          req.Notes,
		CustomerID:     customerID,
		OwnerID:        ownerID,
		CustomFields:   req.CustomFields,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create lead")
	}
	return leadres.NewLeadResponse(ld), nil
}

// GetLead retrieves a single lead
func (h *LeadHandler) GetLead(ctx context.Context, leadID string) (*leadres.LeadResponse, error) {
	ld, err := h.leads.GetByPublicID(ctx, leadID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get lead")
	}
	return leadres.NewLeadResponse(ld), nil
}

// ListLeads lists leads with search and pagination
func (h *LeadHandler) ListLeads(ctx context.Context, filter lead.Filter, pagination *query.Pagination) (*leadres.LeadListResponse, error) {
	// Fetch limit+1 to determine hasMore
	var requestedLimit *int
	if pagination != nil && pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	leads, total, err := h.leads.List(ctx, filter, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list leads")
	}

	hasMore := false
	var nextCursor *string
	if requestedLimit != nil && len(leads) > *requestedLimit {
		hasMore = true
		lastIndex := *requestedLimit - 1
		cursorValue := strconv.FormatUint(uint64(leads[lastIndex].ID), 10)
		nextCursor = &cursorValue
		leads = leads[:*requestedLimit]
	}

	return leadres.NewLeadListResponse(leads, hasMore, nextCursor, total), nil
}

// UpdateLead patches a lead
func (h *LeadHandler) UpdateLead(ctx context.Context, leadID string, req leadreq.UpdateLeadRequest) (*leadres.LeadResponse, error) {
	var customerID *uint
	if req.CustomerID != nil {
		id, err := h.resolveCustomer(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = id
	}

	var ownerID *uint
	if req.OwnerID != nil {
		owner, err := h.users.GetByPublicID(ctx, *req.OwnerID)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve owner")
		}
		ownerID = &owner.ID
	}

	ld, err := h.leads.Update(ctx, leadID, lead.UpdateInput{
		Title:          req.Title,
		Source:         req.Source,
		EstimatedValue: req.EstimatedValue,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Notes:          req.Notes,
		CustomerID:     customerID,
		OwnerID:        ownerID,
		CustomFields:   req.CustomFields,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update lead")
	}
	return leadres.NewLeadResponse(ld), nil
}

// TransitionLead moves a lead through the pipeline; converting links or
// creates a customer.
func (h *LeadHandler) TransitionLead(ctx context.Context, leadID string, req leadreq.TransitionLeadRequest) (*leadres.LeadResponse, error) {
	status, ok := lead.ParseStatus(req.Status)
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "unknown lead status", nil, "b4e8a1c7-2f9d-4c6e-8b3a-6d1f9e2c7a50")
	}

	ld, err := h.leads.Transition(ctx, leadID, status)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update lead status")
	}

	if status == lead.StatusConverted {
		metrics.RecordLeadConversion()
	}
	return leadres.NewLeadResponse(ld), nil
}

// DeleteLead removes a lead
func (h *LeadHandler) DeleteLead(ctx context.Context, leadID string) (*leadres.LeadDeletedResponse, error) {
	if err := h.leads.Delete(ctx, leadID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete lead")
	}
	return &leadres.LeadDeletedResponse{
		ID:      leadID,
		Object:  "lead.deleted",
		Deleted: true,
	}, nil
}
