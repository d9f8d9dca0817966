package contact

import (
	"context"
	"strings"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/query"
	"crm-server/internal/utils/idgen"
	"crm-server/internal/utils/platformerrors"
)

// CreateInput carries the fields accepted when creating a contact.
type CreateInput struct {
	CustomerID uint
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Position   string
}

// UpdateInput patches a contact; nil fields are left untouched.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Position  *string
}

// Service handles business logic for contacts.
type Service struct {
	repo      Repository
	customers *customer.Service
}

// NewService constructs a Service.
func NewService(repo Repository, customers *customer.Service) *Service {
	return &Service{repo: repo, customers: customers}
}

// Create validates and persists a new contact under an existing customer.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Contact, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.FirstName == "" && input.LastName == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "contact name is required", nil, "7c2e9a4b-1d8f-4b6e-9a3c-5e8d2f7b1a60")
	}

	cust, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	publicID, err := idgen.GenerateSecureID("cont", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate contact ID")
	}

	c := &Contact{
		PublicID:   publicID,
		CustomerID: cust.ID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      strings.TrimSpace(strings.ToLower(input.Email)),
		Phone:      strings.TrimSpace(input.Phone),
		Position:   strings.TrimSpace(input.Position),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create contact")
	}
	return c, nil
}

// GetByPublicID returns a contact or a not-found error.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*Contact, error) {
	if !idgen.ValidateIDFormat(publicID, "cont") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "contact not found", nil, "c6e2a9f4-7b1d-4f8a-9d3e-4a8c1f6b2e70")
	}
	c, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get contact")
	}
	if c == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "contact not found", nil, "9f4b2c7e-8a1d-4e6b-a3f9-2c5d8e7a4b10")
	}
	return c, nil
}

// List returns contacts matching the filter with pagination.
func (s *Service) List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Contact, int64, error) {
	contacts, total, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list contacts")
	}
	return contacts, total, nil
}

// Update applies the non-nil fields of input to the contact.
func (s *Service) Update(ctx context.Context, publicID string, input UpdateInput) (*Contact, error) {
	c, err := s.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		c.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		c.LastName = strings.TrimSpace(*input.LastName)
	}
	if c.FirstName == "" && c.LastName == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "contact name must not be empty", nil, "3d8a1c6e-7f2b-4a9e-b5d1-8c4f2e9a6b30")
	}
	if input.Email != nil {
		c.Email = strings.TrimSpace(strings.ToLower(*input.Email))
	}
	if input.Phone != nil {
		c.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Position != nil {
		c.Position = strings.TrimSpace(*input.Position)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update contact")
	}
	return c, nil
}

// Delete removes a contact.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if _, err := s.GetByPublicID(ctx, publicID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete contact")
	}
	return nil
}
