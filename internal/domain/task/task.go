package task

import (
	"context"
	"strings"
	"time"

	"crm-server/internal/domain/query"
)

// Status is a task workflow state.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses returns all task statuses.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusDone}
}

// ParseStatus parses a task status, case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusOpen:
		return StatusOpen, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusDone:
		return StatusDone, true
	default:
		return "", false
	}
}

// Task is a unit of work assigned to a user, optionally tied to a
// customer or lead.
type Task struct {
	ID          uint
	PublicID    string
	Title       string
	Description string
	Status      Status
	DueAt       *time.Time
	AssigneeID  uint
	CustomerID  *uint
	LeadID      *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows task listings.
type Filter struct {
	Search     *string
	Status     *Status
	AssigneeID *uint
	CustomerID *uint
	LeadID     *uint
}

// Repository persists tasks. Find methods return (nil, nil) when no row
// matches.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByPublicID(ctx context.Context, publicID string) (*Task, error)
	List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Task, int64, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, publicID string) error
	DueBefore(ctx context.Context, deadline time.Time, statuses []Status) ([]*Task, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
