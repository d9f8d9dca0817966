// Package analytics aggregates headline counts across the CRM entities.
package analytics

import (
	"context"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/task"
	"crm-server/internal/domain/user"
	"crm-server/internal/utils/platformerrors"
)

// Summary is the dashboard aggregation returned by the summary endpoint.
type Summary struct {
	CustomersTotal int64                 `json:"customers_total"`
	LeadsByStatus  map[lead.Status]int64 `json:"leads_by_status"`
	TasksByStatus  map[task.Status]int64 `json:"tasks_by_status"`
	ActiveUsers    int64                 `json:"active_users"`
}

// Service computes CRM summary figures.
type Service struct {
	customers customer.Repository
	leads     lead.Repository
	tasks     task.Repository
	users     user.Repository
}

// NewService constructs a Service.
func NewService(customers customer.Repository, leads lead.Repository, tasks task.Repository, users user.Repository) *Service {
	return &Service{customers: customers, leads: leads, tasks: tasks, users: users}
}

// Summary runs one aggregation round-trip per entity. Every status in the
// lead and task enums appears in the maps, zero-filled when absent.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	customersTotal, err := s.customers.Count(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count customers")
	}

	leadCounts, err := s.leads.CountByStatus(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count leads")
	}
	leadsByStatus := make(map[lead.Status]int64, len(lead.Statuses()))
	for _, st := range lead.Statuses() {
		leadsByStatus[st] = leadCounts[st]
	}

	taskCounts, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count tasks")
	}
	tasksByStatus := make(map[task.Status]int64, len(task.Statuses()))
	for _, st := range task.Statuses() {
		tasksByStatus[st] = taskCounts[st]
	}

	activeUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count active users")
	}

	return &Summary{
		CustomersTotal: customersTotal,
		LeadsByStatus:  leadsByStatus,
		TasksByStatus:  tasksByStatus,
		ActiveUsers:    activeUsers,
	}, nil
}
