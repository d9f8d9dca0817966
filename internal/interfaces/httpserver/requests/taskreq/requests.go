package taskreq

import "time"

// CreateTaskRequest represents the request to create a task. Referenced
// entities are addressed by their public IDs.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	CustomerID  *string    `json:"customer_id,omitempty"`
	LeadID      *string    `json:"lead_id,omitempty"`
}

// UpdateTaskRequest represents the request to update a task
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	CustomerID  *string    `json:"customer_id,omitempty"`
	LeadID      *string    `json:"lead_id,omitempty"`
}
