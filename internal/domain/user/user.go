// Package user provides the user domain model and the authentication gate.
package user

import (
	"context"
	"time"

	"crm-server/internal/domain"
	"crm-server/internal/domain/query"
)

// User models an application account. Username is immutable after creation
// and unique; the password hash is opaque and never leaves the domain layer.
type User struct {
	ID           uint
	PublicID     string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         domain.Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal converts the user into the request-scoped caller identity.
func (u *User) Principal() domain.Principal {
	return domain.Principal{
		UserID:   u.ID,
		PublicID: u.PublicID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Filter narrows List queries.
type Filter struct {
	Search *string
	Role   *domain.Role
	Active *bool
}

// Repository defines storage operations for users. Find methods return
// (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, usr *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*User, int64, error)
	Update(ctx context.Context, usr *User) error
	Delete(ctx context.Context, publicID string) error
	CountActive(ctx context.Context) (int64, error)
}
