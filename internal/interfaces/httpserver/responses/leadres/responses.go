package leadres

import (
	"crm-server/internal/domain/lead"
)

// LeadResponse represents a single lead response
type LeadResponse struct {
	ID             string         `json:"id"`
	Object         string         `json:"object"`
	Title          string         `json:"title"`
	Status         string         `json:"status"`
	Source         string         `json:"source,omitempty"`
	EstimatedValue string         `json:"estimated_value"`
	ContactName    string         `json:"contact_name,omitempty"`
	ContactEmail   string         `json:"contact_email,omitempty"`
	ContactPhone   string         `json:"contact_phone,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	CustomerID     *uint          `json:"customer_id,omitempty"`
	OwnerID        uint           `json:"owner_id,omitempty"`
	CustomFields   map[string]any `json:"custom_fields,omitempty"`
	CreatedAt      int64          `json:"created_at"`
	UpdatedAt      int64          `json:"updated_at"`
}

// LeadListResponse represents a paginated list of leads
type LeadListResponse struct {
	Object     string         `json:"object"`
	Data       []LeadResponse `json:"data"`
	FirstID    string         `json:"first_id,omitempty"`
	LastID     string         `json:"last_id,omitempty"`
	NextCursor *string        `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
	Total      int64          `json:"total"`
}

// LeadDeletedResponse represents the delete confirmation response
type LeadDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewLeadResponse creates a response from a domain lead
func NewLeadResponse(ld *lead.Lead) *LeadResponse {
	return &LeadResponse{
		ID:             ld.PublicID,
		Object:         "lead",
		Title:          ld.Title,
		Status:         string(ld.Status),
		Source:         ld.Source,
		EstimatedValue: ld.EstimatedValue.String(),
		ContactName:    ld.ContactName,
		ContactEmail:   ld.ContactEmail,
		ContactPhone:   ld.ContactPhone,
		Notes:          ld.Notes,
		CustomerID:     ld.CustomerID,
		OwnerID:        ld.OwnerID,
		CustomFields:   ld.CustomFields,
		CreatedAt:      ld.CreatedAt.Unix(),
		UpdatedAt:      ld.UpdatedAt.Unix(),
	}
}

// NewLeadListResponse creates a list response from domain leads
func NewLeadListResponse(leads []*lead.Lead, hasMore bool, nextCursor *string, total int64) *LeadListResponse {
	data := make([]LeadResponse, len(leads))
	for i, ld := range leads {
		data[i] = *NewLeadResponse(ld)
	}

	resp := &LeadListResponse{
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
