package analytics

import (
	"context"
	"testing"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/task"
	"crm-server/internal/domain/user"
)

type stubCustomers struct {
	customer.Repository
	total int64
}

func (s stubCustomers) Count(context.Context) (int64, error) { return s.total, nil }

type stubLeads struct {
	lead.Repository
	counts map[lead.Status]int64
}

func (s stubLeads) CountByStatus(context.Context) (map[lead.Status]int64, error) {
	return s.counts, nil
}

type stubTasks struct {
	task.Repository
	counts map[task.Status]int64
}

func (s stubTasks) CountByStatus(context.Context) (map[task.Status]int64, error) {
	return s.counts, nil
}

type stubUsers struct {
	user.Repository
	active int64
}

func (s stubUsers) CountActive(context.Context) (int64, error) { return s.active, nil }

func TestSummaryZeroFillsStatuses(t *testing.T) {
	svc := NewService(
		stubCustomers{total: 12},
		stubLeads{counts: map[lead.Status]int64{lead.StatusNew: 4, lead.StatusConverted: 1}},
		stubTasks{counts: map[task.Status]int64{task.StatusOpen: 6}},
		stubUsers{active: 3},
	)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.CustomersTotal != 12 {
		t.Fatalf("expected 12 customers, got %d", summary.CustomersTotal)
	}
	if summary.ActiveUsers != 3 {
		t.Fatalf("expected 3 active users, got %d", summary.ActiveUsers)
	}
	if got := summary.LeadsByStatus[lead.StatusNew]; got != 4 {
		t.Fatalf("expected 4 new leads, got %d", got)
	}
	if got, ok := summary.LeadsByStatus[lead.StatusLost]; !ok || got != 0 {
		t.Fatalf("expected zero-filled LOST bucket, got %d (present=%v)", got, ok)
	}
	if len(summary.LeadsByStatus) != len(lead.Statuses()) {
		t.Fatalf("expected %d lead buckets, got %d", len(lead.Statuses()), len(summary.LeadsByStatus))
	}
	if got, ok := summary.TasksByStatus[task.StatusDone]; !ok || got != 0 {
		t.Fatalf("expected zero-filled DONE bucket, got %d (present=%v)", got, ok)
	}
}
