package contactres

import (
	"crm-server/internal/domain/contact"
)

// ContactResponse represents a single contact response
type ContactResponse struct {
	ID         string `json:"id"`
	Object     string `json:"object"`
	CustomerID uint   `json:"customer_id"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}

// ContactListResponse represents a paginated list of contacts
type ContactListResponse struct {
	Object     string            `json:"object"`
	Data       []ContactResponse `json:"data"`
	FirstID    string            `json:"first_id,omitempty"`
	LastID     string            `json:"last_id,omitempty"`
	NextCursor *string           `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
	Total      int64             `json:"total"`
}

// ContactDeletedResponse represents the delete confirmation response
type ContactDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewContactResponse creates a response from a domain contact
func NewContactResponse(c *contact.Contact) *ContactResponse {
	return &ContactResponse{
		ID:         c.PublicID,
		Object:     "contact",
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Position:   c.Position,
		CreatedAt:  c.CreatedAt.Unix(),
		UpdatedAt:  c.UpdatedAt.Unix(),
	}
}

// NewContactListResponse creates a list response from domain contacts
func NewContactListResponse(contacts []*contact.Contact, hasMore bool, nextCursor *string, total int64) *ContactListResponse {
	data := make([]ContactResponse, len(contacts))
	for i, c := range contacts {
		data[i] = *NewContactResponse(c)
	}

	resp := &ContactListResponse{
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
