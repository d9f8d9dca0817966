package customerreq

// CreateCustomerRequest represents the request to create a customer
type CreateCustomerRequest struct {
	Name         string         `json:"name" binding:"required"`
	Company      string         `json:"company,omitempty"`
	Email        string         `json:"email,omitempty" binding:"omitempty,email"`
	Phone        string         `json:"phone,omitempty"`
	Address      string         `json:"address,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
}

// UpdateCustomerRequest represents the request to update a customer
type UpdateCustomerRequest struct {
	Name         *string        `json:"name,omitempty"`
	Company      *string        `json:"company,omitempty"`
	Email        *string        `json:"email,omitempty" binding:"omitempty,email"`
	Phone        *string        `json:"phone,omitempty"`
	Address      *string        `json:"address,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
}
