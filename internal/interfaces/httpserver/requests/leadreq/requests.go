package leadreq

import "github.com/shopspring/decimal"

// CreateLeadRequest represents the request to create a lead. The customer
// reference is the customer's public ID.
type CreateLeadRequest struct {
	Title          string          `json:"title" binding:"required"`
	Source         string          `json:"source,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	ContactName    string          `json:"contact_name,omitempty"`
	ContactEmail   string          `json:"contact_email,omitempty" binding:"omitempty,email"`
	ContactPhone   string          `json:"contact_phone,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CustomerID     *string         `json:"customer_id,omitempty"`
	CustomFields   map[string]any  `json:"custom_fields,omitempty"`
}

// UpdateLeadRequest represents the request to update a lead. Status changes
// go through the dedicated status endpoint.
type UpdateLeadRequest struct {
	Title          *string          `json:"title,omitempty"`
	Source         *string          `json:"source,omitempty"`
	EstimatedValue *decimal.Decimal `json:"estimated_value,omitempty"`
	ContactName    *string          `json:"contact_name,omitempty"`
	ContactEmail   *string          `json:"contact_email,omitempty" binding:"omitempty,email"`
	ContactPhone   *string          `json:"contact_phone,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	CustomerID     *string          `json:"customer_id,omitempty"`
	OwnerID        *string          `json:"owner_id,omitempty"`
	CustomFields   map[string]any   `json:"custom_fields,omitempty"`
}

// TransitionLeadRequest represents the request to change a lead's status
type TransitionLeadRequest struct {
	Status string `json:"status" binding:"required"`
}
