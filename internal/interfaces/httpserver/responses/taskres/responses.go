package taskres

import (
	"crm-server/internal/domain/task"
)

// TaskResponse represents a single task response
type TaskResponse struct {
	ID          string `json:"id"`
	Object      string `json:"object"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	DueAt       *int64 `json:"due_at,omitempty"`
	AssigneeID  uint   `json:"assignee_id"`
	CustomerID  *uint  `json:"customer_id,omitempty"`
	LeadID      *uint  `json:"lead_id,omitempty"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Object     string         `json:"object"`
	Data       []TaskResponse `json:"data"`
	FirstID    string         `json:"first_id,omitempty"`
	LastID     string         `json:"last_id,omitempty"`
	NextCursor *string        `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
	Total      int64          `json:"total"`
}

// TaskDeletedResponse represents the delete confirmation response
type TaskDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewTaskResponse creates a response from a domain task
func NewTaskResponse(t *task.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.PublicID,
		Object:      "task",
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		AssigneeID:  t.AssigneeID,
		CustomerID:  t.CustomerID,
		LeadID:      t.LeadID,
		CreatedAt:   t.CreatedAt.Unix(),
		UpdatedAt:   t.UpdatedAt.Unix(),
	}

	if t.DueAt != nil {
		dueUnix := t.DueAt.Unix()
		resp.DueAt = &dueUnix
	}

	return resp
}

// NewTaskListResponse creates a list response from domain tasks
func NewTaskListResponse(tasks []*task.Task, hasMore bool, nextCursor *string, total int64) *TaskListResponse {
	data := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		data[i] = *NewTaskResponse(t)
	}

	resp := &TaskListResponse{
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
