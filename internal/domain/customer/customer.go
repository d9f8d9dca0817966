// Package customer provides the customer domain model and service.
package customer

import (
	"context"
	"time"

	"crm-server/internal/domain/query"
)

// Customer is an account the sales team manages. OwnerID references the
// user responsible for the relationship.
type Customer struct {
	ID           uint
	PublicID     string
	Name         string
	Company      string
	Email        string
	Phone        string
	Address      string
	OwnerID      uint
	Tags         []string
	CustomFields map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows List queries. Search matches name, company and email as a
// case-insensitive substring.
type Filter struct {
	Search  *string
	OwnerID *uint
}

// Repository defines storage operations for customers. Find methods return
// (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, cust *Customer) error
	FindByPublicID(ctx context.Context, publicID string) (*Customer, error)
	FindByID(ctx context.Context, id uint) (*Customer, error)
	List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Customer, int64, error)
	Update(ctx context.Context, cust *Customer) error
	Delete(ctx context.Context, publicID string) error
	Count(ctx context.Context) (int64, error)
}
