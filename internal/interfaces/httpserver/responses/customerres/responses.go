package customerres

import (
	"crm-server/internal/domain/customer"
)

// CustomerResponse represents a single customer response
type CustomerResponse struct {
	ID           string         `json:"id"`
	Object       string         `json:"object"`
	Name         string         `json:"name"`
	Company      string         `json:"company,omitempty"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Address      string         `json:"address,omitempty"`
	OwnerID      uint           `json:"owner_id,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
	CreatedAt    int64          `json:"created_at"`
	UpdatedAt    int64          `json:"updated_at"`
}

// CustomerListResponse represents a paginated list of customers
type CustomerListResponse struct {
	Object     string             `json:"object"`
	Data       []CustomerResponse `json:"data"`
	FirstID    string             `json:"first_id,omitempty"`
	LastID     string             `json:"last_id,omitempty"`
	NextCursor *string            `json:"next_cursor,omitempty"`
	HasMore    bool               `json:"has_more"`
	Total      int64              `json:"total"`
}

// CustomerDeletedResponse represents the delete confirmation response
type CustomerDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewCustomerResponse creates a response from a domain customer
func NewCustomerResponse(cust *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:           cust.PublicID,
		Object:       "customer",
		Name:         cust.Name,
		Company:      cust.Company,
		Email:        cust.Email,
		Phone:        cust.Phone,
		Address:      cust.Address,
		OwnerID:      cust.OwnerID,
		Tags:         cust.Tags,
		CustomFields: cust.CustomFields,
		CreatedAt:    cust.CreatedAt.Unix(),
		UpdatedAt:    cust.UpdatedAt.Unix(),
	}
}

// NewCustomerListResponse creates a list response from domain customers
func NewCustomerListResponse(customers []*customer.Customer, hasMore bool, nextCursor *string, total int64) *CustomerListResponse {
	data := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		data[i] = *NewCustomerResponse(cust)
	}

	resp := &CustomerListResponse{
		Object:     "list",
		Data:       data,
		HasMore:    hasMore,
		Total:      total,
		NextCursor: nextCursor,
	}

	if len(data) > 0 {
		resp.FirstID = data[0].ID
		resp.LastID = data[len(data)-1].ID
	}

	return resp
}
