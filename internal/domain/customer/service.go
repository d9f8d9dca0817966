package customer

import (
	"context"
	"strings"

	"crm-server/internal/domain/query"
	"crm-server/internal/utils/idgen"
	"crm-server/internal/utils/platformerrors"
)

// CreateInput carries the fields accepted when creating a customer.
type CreateInput struct {
	Name         string
	Company      string
	Email        string
	Phone        string
	Address      string
	OwnerID      uint
	Tags         []string
	CustomFields map[string]any
}

// UpdateInput patches a customer; nil fields are left untouched.
type UpdateInput struct {
	Name         *string
	Company      *string
	Email        *string
	Phone        *string
	Address      *string
	OwnerID      *uint
	Tags         []string
	CustomFields map[string]any
}

// Service handles business logic for customers.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new customer.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Customer, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "customer name is required", nil, "2f7a9c4e-8b1d-4e6a-9f3c-5d2e8a7b1c40")
	}

	publicID, err := idgen.GenerateSecureID("cust", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate customer ID")
	}

	cust := &Customer{
		PublicID:     publicID,
		Name:         input.Name,
		Company:      strings.TrimSpace(input.Company),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		OwnerID:      input.OwnerID,
		Tags:         normalizeTags(input.Tags),
		CustomFields: input.CustomFields,
	}

	if err := s.repo.Create(ctx, cust); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create customer")
	}
	return cust, nil
}

// GetByPublicID returns a customer or a not-found error.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*Customer, error) {
	if !idgen.ValidateIDFormat(publicID, "cust") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "customer not found", nil, "3a8e5c1f-9b4d-4e2a-8f7c-6d1b9e4a2c60")
	}
	cust, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get customer")
	}
	if cust == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "customer not found", nil, "6e1b8d3f-2a9c-4c7e-8b5a-9f4d1e6c2a80")
	}
	return cust, nil
}

// GetByID returns a customer by internal ID or a not-found error.
func (s *Service) GetByID(ctx context.Context, id uint) (*Customer, error) {
	cust, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get customer")
	}
	if cust == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "customer not found", nil, "6e1b8d3f-2a9c-4c7e-8b5a-9f4d1e6c2a80")
	}
	return cust, nil
}

// List returns customers matching the filter with pagination.
func (s *Service) List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Customer, int64, error) {
	customers, total, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list customers")
	}
	return customers, total, nil
}

// Update applies the non-nil fields of input to the customer.
func (s *Service) Update(ctx context.Context, publicID string, input UpdateInput) (*Customer, error) {
	cust, err := s.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "customer name must not be empty", nil, "4c9e2b7a-1f8d-4a6c-9e3b-7d5a2c8f1b60")
		}
		cust.Name = name
	}
	if input.Company != nil {
		cust.Company = strings.TrimSpace(*input.Company)
	}
	if input.Email != nil {
		cust.Email = strings.TrimSpace(strings.ToLower(*input.Email))
	}
	if input.Phone != nil {
		cust.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		cust.Address = strings.TrimSpace(*input.Address)
	}
	if input.OwnerID != nil {
		cust.OwnerID = *input.OwnerID
	}
	if input.Tags != nil {
		cust.Tags = normalizeTags(input.Tags)
	}
	if input.CustomFields != nil {
		cust.CustomFields = input.CustomFields
	}

	if err := s.repo.Update(ctx, cust); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update customer")
	}
	return cust, nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if _, err := s.GetByPublicID(ctx, publicID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete customer")
	}
	return nil
}

// normalizeTags trims, lowercases and deduplicates tags, preserving order.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
