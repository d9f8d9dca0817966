package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"crm-server/internal/domain/notify"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/user"
	"crm-server/internal/utils/platformerrors"
)

type mockTaskRepository struct {
	mu     sync.Mutex
	nextID uint
	tasks  map[string]*Task
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[string]*Task)}
}

func (m *mockTaskRepository) Create(_ context.Context, t *Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.tasks[t.PublicID] = &cp
	return nil
}

func (m *mockTaskRepository) FindByPublicID(_ context.Context, publicID string) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[publicID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockTaskRepository) List(_ context.Context, filter Filter, _ *query.Pagination) ([]*Task, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Task
	for _, t := range m.tasks {
		if filter.AssigneeID != nil && t.AssigneeID != *filter.AssigneeID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (m *mockTaskRepository) Update(_ context.Context, t *Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tasks[t.PublicID] = &cp
	return nil
}

func (m *mockTaskRepository) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, publicID)
	return nil
}

func (m *mockTaskRepository) DueBefore(_ context.Context, deadline time.Time, statuses []Status) ([]*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	allowed := make(map[Status]bool, len(statuses))
	for _, st := range statuses {
		allowed[st] = true
	}
	var out []*Task
	for _, t := range m.tasks {
		if t.DueAt == nil || t.DueAt.After(deadline) || !allowed[t.Status] {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockTaskRepository) CountByStatus(_ context.Context) (map[Status]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[Status]int64)
	for _, t := range m.tasks {
		counts[t.Status]++
	}
	return counts, nil
}

type mockDirectory struct {
	users map[uint]*user.User
}

func (m *mockDirectory) FindByID(_ context.Context, id uint) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type reminderRecorder struct {
	mu        sync.Mutex
	failFor   string
	reminders []notify.TaskReminder
}

func (r *reminderRecorder) SendWelcome(context.Context, notify.Welcome) error { return nil }

func (r *reminderRecorder) SendOperatorAlert(context.Context, notify.OperatorAlert) error {
	return nil
}

func (r *reminderRecorder) SendTaskReminder(_ context.Context, msg notify.TaskReminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFor == msg.TaskID {
		return errors.New("webhook unreachable")
	}
	r.reminders = append(r.reminders, msg)
	return nil
}

func newTestService(users map[uint]*user.User, rec *reminderRecorder) (*Service, *mockTaskRepository) {
	repo := newMockTaskRepository()
	svc := NewService(repo, &mockDirectory{users: users}, rec, zerolog.Nop())
	return svc, repo
}

func TestCreateDefaultsToOpen(t *testing.T) {
	users := map[uint]*user.User{
		5: {ID: 5, Email: "rep@crm.test"},
	}
	svc, _ := newTestService(users, &reminderRecorder{})

	created, err := svc.Create(context.Background(), CreateInput{Title: "Call back", AssigneeID: 5})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != StatusOpen {
		t.Fatalf("expected status %s, got %s", StatusOpen, created.Status)
	}
}

func TestCreateRequiresAssignee(t *testing.T) {
	svc, _ := newTestService(nil, &reminderRecorder{})

	_, err := svc.Create(context.Background(), CreateInput{Title: "Orphan task"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsUnknownAssignee(t *testing.T) {
	svc, repo := newTestService(map[uint]*user.User{}, &reminderRecorder{})

	_, err := svc.Create(context.Background(), CreateInput{Title: "Ghost owner", AssigneeID: 42})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.tasks) != 0 {
		t.Fatalf("expected no task rows, got %d", len(repo.tasks))
	}
}

func TestRemindDueWithin(t *testing.T) {
	rec := &reminderRecorder{}
	users := map[uint]*user.User{
		1: {ID: 1, Email: "amy@crm.test"},
	}
	svc, _ := newTestService(users, rec)
	ctx := context.Background()

	soon := time.Now().UTC().Add(30 * time.Minute)
	farOut := time.Now().UTC().Add(72 * time.Hour)

	due, err := svc.Create(ctx, CreateInput{Title: "Send contract", AssigneeID: 1, DueAt: &soon})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Title: "Quarterly review", AssigneeID: 1, DueAt: &farOut}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	done := StatusDone
	finished, err := svc.Create(ctx, CreateInput{Title: "Already handled", AssigneeID: 1, DueAt: &soon})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Update(ctx, finished.PublicID, UpdateInput{Status: &done}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	sent, err := svc.RemindDueWithin(ctx, time.Hour)
	if err != nil {
		t.Fatalf("reminder sweep failed: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 reminder, got %d", sent)
	}
	if len(rec.reminders) != 1 || rec.reminders[0].TaskID != due.PublicID {
		t.Fatalf("unexpected reminders %+v", rec.reminders)
	}
	if rec.reminders[0].AssigneeEmail != "amy@crm.test" {
		t.Fatalf("unexpected assignee email %q", rec.reminders[0].AssigneeEmail)
	}
}

func TestRemindDueSkipsFailedDeliveries(t *testing.T) {
	rec := &reminderRecorder{}
	users := map[uint]*user.User{
		1: {ID: 1, Email: "amy@crm.test"},
		2: {ID: 2, Email: "bob@crm.test"},
	}
	svc, _ := newTestService(users, rec)
	ctx := context.Background()

	soon := time.Now().UTC().Add(10 * time.Minute)
	failing, err := svc.Create(ctx, CreateInput{Title: "Flaky webhook", AssigneeID: 1, DueAt: &soon})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	rec.failFor = failing.PublicID

	if _, err := svc.Create(ctx, CreateInput{Title: "Healthy delivery", AssigneeID: 2, DueAt: &soon}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sent, err := svc.RemindDueWithin(ctx, time.Hour)
	if err != nil {
		t.Fatalf("reminder sweep failed: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected the surviving reminder only, got %d", sent)
	}
	if len(rec.reminders) != 1 || rec.reminders[0].AssigneeEmail != "bob@crm.test" {
		t.Fatalf("unexpected reminders %+v", rec.reminders)
	}
}

func TestRemindDueSkipsUnknownAssignee(t *testing.T) {
	rec := &reminderRecorder{}
	users := map[uint]*user.User{
		99: {ID: 99, Email: "leaver@crm.test"},
	}
	svc, _ := newTestService(users, rec)
	ctx := context.Background()

	soon := time.Now().UTC().Add(5 * time.Minute)
	if _, err := svc.Create(ctx, CreateInput{Title: "Ghost assignee", AssigneeID: 99, DueAt: &soon}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Assignee leaves between task creation and the sweep.
	delete(users, 99)

	sent, err := svc.RemindDueWithin(ctx, time.Hour)
	if err != nil {
		t.Fatalf("reminder sweep failed: %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected no reminders, got %d", sent)
	}
}
