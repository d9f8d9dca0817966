package lead

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/query"
	"crm-server/internal/utils/idgen"
	"crm-server/internal/utils/platformerrors"
)

// CreateInput carries the fields accepted when creating a lead.
type CreateInput struct {
	Title          string
	Source         string
	EstimatedValue decimal.Decimal
	ContactName    string
	ContactEmail   string
	ContactPhone   string
	Notes          string
	CustomerID     *uint
	OwnerID        uint
	CustomFields   map[string]any
}

// UpdateInput patches a lead; nil fields are left untouched. Status changes
// go through Transition, not Update.
type UpdateInput struct {
	Title          *string
	Source         *string
	EstimatedValue *decimal.Decimal
	ContactName    *string
	ContactEmail   *string
	ContactPhone   *string
	Notes          *string
	CustomerID     *uint
	OwnerID        *uint
	CustomFields   map[string]any
}

// Service handles business logic for leads.
type Service struct {
	repo      Repository
	customers *customer.Service
}

// NewService constructs a Service.
func NewService(repo Repository, customers *customer.Service) *Service {
	return &Service{repo: repo, customers: customers}
}

// Create validates and persists a new lead in status NEW.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Lead, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "lead title is required", nil, "8a3d1f6c-9e2b-4c8a-b7d5-1e4f9c2a6b30")
	}
	if input.EstimatedValue.IsNegative() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "estimated value must not be negative", nil, "3e7c9a1b-5d8f-4b2e-a9c6-7f1d4e8b2c50")
	}

	publicID, err := idgen.GenerateSecureID("lead", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate lead ID")
	}

	ld := &Lead{
		PublicID:       publicID,
		Title:          input.Title,
		Status:         StatusNew,
		Source:         strings.TrimSpace(input.Source),
		EstimatedValue: input.EstimatedValue,
		ContactName:    strings.TrimSpace(input.ContactName),
		ContactEmail:   strings.TrimSpace(strings.ToLower(input.ContactEmail)),
		ContactPhone:   strings.TrimSpace(input.ContactPhone),
		Notes:          input.Notes,
		CustomerID:     input.CustomerID,
		OwnerID:        input.OwnerID,
		CustomFields:   input.CustomFields,
	}

	if err := s.repo.Create(ctx, ld); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create lead")
	}
	return ld, nil
}

// GetByPublicID returns a lead or a not-found error.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*Lead, error) {
	if !idgen.ValidateIDFormat(publicID, "lead") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "lead not found", nil, "7c2f8a4e-1d6b-4b9e-a5c3-8e4d2f7b1a60")
	}
	ld, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get lead")
	}
	if ld == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "lead not found", nil, "1d9f4b2e-7c3a-4e8b-9a6d-2f5c8e1a7b90")
	}
	return ld, nil
}

// List returns leads matching the filter with pagination.
func (s *Service) List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Lead, int64, error) {
	leads, total, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list leads")
	}
	return leads, total, nil
}

// Update applies the non-nil fields of input to the lead.
func (s *Service) Update(ctx context.Context, publicID string, input UpdateInput) (*Lead, error) {
	ld, err := s.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "lead title must not be empty", nil, "5b8e2c9a-4f1d-4a7c-8e3b-9d6a1f4c7e20")
		}
		ld.Title = title
	}
	if input.Source != nil {
		ld.Source = strings.TrimSpace(*input.Source)
	}
	if input.EstimatedValue != nil {
		if input.EstimatedValue.IsNegative() {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "estimated value must not be negative", nil, "3e7c9a1b-5d8f-4b2e-a9c6-7f1d4e8b2c50")
		}
		ld.EstimatedValue = *input.EstimatedValue
	}
	if input.ContactName != nil {
		ld.ContactName = strings.TrimSpace(*input.ContactName)
	}
	if input.ContactEmail != nil {
		ld.ContactEmail = strings.TrimSpace(strings.ToLower(*input.ContactEmail))
	}
	if input.ContactPhone != nil {
		ld.ContactPhone = strings.TrimSpace(*input.ContactPhone)
	}
	if input.Notes != nil {
		ld.Notes = *input.Notes
	}
	if input.CustomerID != nil {
		ld.CustomerID = input.CustomerID
	}
	if input.OwnerID != nil {
		ld.OwnerID = *input.OwnerID
	}
	if input.CustomFields != nil {
		ld.CustomFields = input.CustomFields
	}

	if err := s.repo.Update(ctx, ld); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update lead")
	}
	return ld, nil
}

// Transition moves the lead to a new pipeline status. Converting a lead
// that has no customer yet creates one from the lead's contact data and
// links it.
func (s *Service) Transition(ctx context.Context, publicID string, next Status) (*Lead, error) {
	ld, err := s.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if (ld.Status == StatusConverted || ld.Status == StatusLost) && next != ld.Status {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "a closed lead cannot change status", nil, "9c2a7e4b-8d1f-4c6e-a3b9-5f8d2c1e6a70")
	}

	if next == StatusConverted && ld.CustomerID == nil {
		name := ld.ContactName
		if name == "" {
			name = ld.Title
		}
		cust, err := s.customers.Create(ctx, customer.CreateInput{
			Name:    name,
			Email:   ld.ContactEmail,
			Phone:   ld.ContactPhone,
			OwnerID: ld.OwnerID,
		})
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create customer from lead")
		}
		ld.CustomerID = &cust.ID
	}

	ld.Status = next
	if err := s.repo.Update(ctx, ld); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update lead status")
	}
	return ld, nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if _, err := s.GetByPublicID(ctx, publicID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete lead")
	}
	return nil
}
