// Package lead provides the sales lead domain model and service.
package lead

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crm-server/internal/domain/query"
)

// Status is the closed set of pipeline stages a lead moves through.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusContacted Status = "CONTACTED"
	StatusQualified Status = "QUALIFIED"
	StatusConverted Status = "CONVERTED"
	StatusLost      Status = "LOST"
)

// Statuses lists every valid status in pipeline order.
func Statuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost}
}

// ParseStatus resolves a string to a Status, case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusNew:
		return StatusNew, true
	case StatusContacted:
		return StatusContacted, true
	case StatusQualified:
		return StatusQualified, true
	case StatusConverted:
		return StatusConverted, true
	case StatusLost:
		return StatusLost, true
	}
	return "", false
}

// Lead is a potential deal in the pipeline. CustomerID is set once the lead
// is attached to (or converted into) a customer. EstimatedValue uses decimal
// arithmetic; currency amounts never touch floats.
type Lead struct {
	ID             uint
	PublicID       string
	Title          string
	Status         Status
	Source         string
	EstimatedValue decimal.Decimal
	ContactName    string
	ContactEmail   string
	ContactPhone   string
	Notes          string
	CustomerID     *uint
	OwnerID        uint
	CustomFields   map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter narrows List queries. Search matches title, contact name and
// contact email as a case-insensitive substring.
type Filter struct {
	Search     *string
	Status     *Status
	OwnerID    *uint
	CustomerID *uint
}

// Repository defines storage operations for leads. Find methods return
// (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, ld *Lead) error
	FindByPublicID(ctx context.Context, publicID string) (*Lead, error)
	List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Lead, int64, error)
	Update(ctx context.Context, ld *Lead) error
	Delete(ctx context.Context, publicID string) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
