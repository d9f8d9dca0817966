package customerhandler

import (
	"context"
	"strconv"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/query"
	"crm-server/internal/interfaces/httpserver/requests/customerreq"
	"crm-server/internal/interfaces/httpserver/responses/customerres"
	"crm-server/internal/utils/platformerrors"
)

type CustomerHandler struct {
	customers *customer.Service
}

func NewCustomerHandler(customers *customer.Service) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// CreateCustomer creates a new customer owned by the calling user
func (h *CustomerHandler) CreateCustomer(ctx context.Context, ownerID uint, req customerreq.CreateCustomerRequest) (*customerres.CustomerResponse, error) {
	cust, err := h.customers.Create(ctx, customer.CreateInput{
		Name:         req.Name,
		Company:      req.Company,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		OwnerID:      ownerID,
		Tags:         req.Tags,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create customer")
	}
	return customerres.NewCustomerResponse(cust), nil
}

// GetCustomer retrieves a single customer
func (h *CustomerHandler) GetCustomer(ctx context.Context, customerID string) (*customerres.CustomerResponse, error) {
	cust, err := h.customers.GetByPublicID(ctx, customerID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get customer")
	}
	return customerres.NewCustomerResponse(cust), nil
}

// ListCustomers lists customers with search and pagination
func (h *CustomerHandler) ListCustomers(ctx context.Context, filter customer.Filter, pagination *query.Pagination) (*customerres.CustomerListResponse, error) {
	// Fetch limit+1 to determine hasMore
	var requestedLimit *int
	if pagination != nil && pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	customers, total, err := h.customers.List(ctx, filter, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list customers")
	}

	hasMore := false
	var nextCursor *string
	if requestedLimit != nil && len(customers) > *requestedLimit {
		hasMore = true
		lastIndex := *requestedLimit - 1
		cursorValue := strconv.FormatUint(uint64(customers[lastIndex].ID), 10)
		nextCursor = &cursorValue
		customers = customers[:*requestedLimit]
	}

	return customerres.NewCustomerListResponse(customers, hasMore, nextCursor, total), nil
}

// UpdateCustomer patches a customer
func (h *CustomerHandler) UpdateCustomer(ctx context.Context, customerID string, req customerreq.UpdateCustomerRequest) (*customerres.CustomerResponse, error) {
	cust, err := h.customers.Update(ctx, customerID, customer.UpdateInput{
		Name:         req.Name,
		Company:      req.Company,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Tags:         req.Tags,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update customer")
	}
	return customerres.NewCustomerResponse(cust), nil
}

// DeleteCustomer removes a customer
func (h *CustomerHandler) DeleteCustomer(ctx context.Context, customerID string) (*customerres.CustomerDeletedResponse, error) {
	if err := h.customers.Delete(ctx, customerID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete customer")
	}
	return &customerres.CustomerDeletedResponse{
		ID:      customerID,
		Object:  "customer.deleted",
		Deleted: true,
	}, nil
}
