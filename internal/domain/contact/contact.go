package contact

import (
	"context"
	"time"

	"crm-server/internal/domain/query"
)

// Contact is a person record attached to a customer.
type Contact struct {
	ID         uint
	PublicID   string
	CustomerID uint
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Position   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter narrows contact listings.
type Filter struct {
	Search     *string
	CustomerID *uint
}

// Repository persists contacts. Find methods return (nil, nil) when no row
// matches.
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	FindByPublicID(ctx context.Context, publicID string) (*Contact, error)
	List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Contact, int64, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, publicID string) error
}
