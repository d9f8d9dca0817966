package task

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"crm-server/internal/domain/notify"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/user"
	"crm-server/internal/utils/idgen"
	"crm-server/internal/utils/platformerrors"
)

// CreateInput carries the fields accepted when creating a task.
type CreateInput struct {
	Title       string
	Description string
	DueAt       *time.Time
	AssigneeID  uint
	CustomerID  *uint
	LeadID      *uint
}

// UpdateInput patches a task; nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *Status
	DueAt       *time.Time
	AssigneeID  *uint
	CustomerID  *uint
	LeadID      *uint
}

// AssigneeDirectory resolves task assignees to users for reminder delivery.
type AssigneeDirectory interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

// Service handles business logic for tasks.
type Service struct {
	repo     Repository
	users    AssigneeDirectory
	notifier notify.Notifier
	logger   zerolog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, users AssigneeDirectory, notifier notify.Notifier, logger zerolog.Logger) *Service {
	return &Service{repo: repo, users: users, notifier: notifier, logger: logger}
}

// Create validates and persists a new task in status OPEN.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "task title is required", nil, "6e1b9d4a-2c7f-4e8b-a5d3-8f2c6a9e1b40")
	}
	if input.AssigneeID == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "task assignee is required", nil, "4a8c2e7b-9d1f-4b6a-8e3c-5f9d2b7a4c60")
	}

	assignee, err := s.users.FindByID(ctx, input.AssigneeID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve assignee")
	}
	if assignee == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "task assignee does not exist", nil, "8d4f1a6c-3b9e-4e7a-b2c8-6a1d9f4e7c20")
	}

	publicID, err := idgen.GenerateSecureID("task", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate task ID")
	}

	t := &Task{
		PublicID:    publicID,
		Title:       input.Title,
		Description: input.Description,
		Status:      StatusOpen,
		DueAt:       input.DueAt,
		AssigneeID:  input.AssigneeID,
		CustomerID:  input.CustomerID,
		LeadID:      input.LeadID,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create task")
	}
	return t, nil
}

// GetByPublicID returns a task or a not-found error.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*Task, error) {
	if !idgen.ValidateIDFormat(publicID, "task") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "task not found", nil, "5e9b3c7a-2f8d-4d1e-b6a4-1c7e9f2d8b30")
	}
	t, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get task")
	}
	if t == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "task not found", nil, "2b7e9c4a-6d1f-4a8e-b3c5-9f2d8e6a1c70")
	}
	return t, nil
}

// List returns tasks matching the filter with pagination.
func (s *Service) List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Task, int64, error) {
	tasks, total, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list tasks")
	}
	return tasks, total, nil
}

// Update applies the non-nil fields of input to the task.
func (s *Service) Update(ctx context.Context, publicID string, input UpdateInput) (*Task, error) {
	t, err := s.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "task title must not be empty", nil, "8d3f1a6c-4b9e-4c7a-9e2d-6a8f3c1b5e90")
		}
		t.Title = title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.DueAt != nil {
		t.DueAt = input.DueAt
	}
	if input.AssigneeID != nil {
		t.AssigneeID = *input.AssigneeID
	}
	if input.CustomerID != nil {
		t.CustomerID = input.CustomerID
	}
	if input.LeadID != nil {
		t.LeadID = input.LeadID
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update task")
	}
	return t, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if _, err := s.GetByPublicID(ctx, publicID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete task")
	}
	return nil
}

// RemindDueWithin notifies assignees of unfinished tasks due within the
// window. Delivery is best-effort; failures are logged and skipped. It
// returns the number of reminders delivered.
func (s *Service) RemindDueWithin(ctx context.Context, window time.Duration) (int, error) {
	deadline := time.Now().UTC().Add(window)
	tasks, err := s.repo.DueBefore(ctx, deadline, []Status{StatusOpen, StatusInProgress})
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to query due tasks")
	}

	sent := 0
	for _, t := range tasks {
		if t.DueAt == nil {
			continue
		}
		assignee, err := s.users.FindByID(ctx, t.AssigneeID)
		if err != nil || assignee == nil {
			s.logger.Warn().Err(err).Str("task_id", t.PublicID).Uint("assignee_id", t.AssigneeID).Msg("skipping reminder, assignee not resolvable")
			continue
		}
		msg := notify.TaskReminder{
			AssigneeEmail: assignee.Email,
			TaskID:        t.PublicID,
			Title:         t.Title,
			DueAt:         *t.DueAt,
		}
		if err := s.notifier.SendTaskReminder(ctx, msg); err != nil {
			s.logger.Warn().Err(err).Str("task_id", t.PublicID).Msg("task reminder delivery failed")
			continue
		}
		sent++
	}
	return sent, nil
}
