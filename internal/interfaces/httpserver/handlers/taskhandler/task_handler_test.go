package taskhandler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/notify"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/task"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/auth"
	"crm-server/internal/interfaces/httpserver/requests/taskreq"
	"crm-server/internal/utils/platformerrors"
)

type memUserRepo struct {
	nextID uint
	users  map[string]*user.User // keyed by public ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*user.User)}
}

func (m *memUserRepo) Create(_ context.Context, usr *user.User) error {
	m.nextID++
	usr.ID = m.nextID
	cp := *usr
	m.users[usr.PublicID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByPublicID(_ context.Context, publicID string) (*user.User, error) {
	u, ok := m.users[publicID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := m.FindByUsername(ctx, username)
	return u != nil, nil
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) List(_ context.Context, _ user.Filter, _ *query.Pagination) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (m *memUserRepo) Update(_ context.Context, usr *user.User) error {
	cp := *usr
	m.users[usr.PublicID] = &cp
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, publicID string) error {
	delete(m.users, publicID)
	return nil
}

func (m *memUserRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type memCustomerRepo struct {
	nextID    uint
	customers map[string]*customer.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[string]*customer.Customer)}
}

func (m *memCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.customers[c.PublicID] = &cp
	return nil
}

func (m *memCustomerRepo) FindByPublicID(_ context.Context, publicID string) (*customer.Customer, error) {
	c, ok := m.customers[publicID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCustomerRepo) FindByID(_ context.Context, id uint) (*customer.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCustomerRepo) List(_ context.Context, _ customer.Filter, _ *query.Pagination) ([]*customer.Customer, int64, error) {
	return nil, 0, nil
}

func (m *memCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	cp := *c
	m.customers[c.PublicID] = &cp
	return nil
}

func (m *memCustomerRepo) Delete(_ context.Context, publicID string) error {
	delete(m.customers, publicID)
	return nil
}

func (m *memCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.customers)), nil
}

type memLeadRepo struct {
	nextID uint
	leads  map[string]*lead.Lead
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: make(map[string]*lead.Lead)}
}

func (m *memLeadRepo) Create(_ context.Context, ld *lead.Lead) error {
	m.nextID++
	ld.ID = m.nextID
	cp := *ld
	m.leads[ld.PublicID] = &cp
	return nil
}

func (m *memLeadRepo) FindByPublicID(_ context.Context, publicID string) (*lead.Lead, error) {
	ld, ok := m.leads[publicID]
	if !ok {
		return nil, nil
	}
	cp := *ld
	return &cp, nil
}

func (m *memLeadRepo) List(_ context.Context, _ lead.Filter, _ *query.Pagination) ([]*lead.Lead, int64, error) {
	return nil, 0, nil
}

func (m *memLeadRepo) Update(_ context.Context, ld *lead.Lead) error {
	cp := *ld
	m.leads[ld.PublicID] = &cp
	return nil
}

func (m *memLeadRepo) Delete(_ context.Context, publicID string) error {
	delete(m.leads, publicID)
	return nil
}

func (m *memLeadRepo) CountByStatus(_ context.Context) (map[lead.Status]int64, error) {
	return map[lead.Status]int64{}, nil
}

type memTaskRepo struct {
	nextID uint
	tasks  map[string]*task.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*task.Task)}
}

func (m *memTaskRepo) Create(_ context.Context, t *task.Task) error {
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.tasks[t.PublicID] = &cp
	return nil
}

func (m *memTaskRepo) FindByPublicID(_ context.Context, publicID string) (*task.Task, error) {
	t, ok := m.tasks[publicID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTaskRepo) List(_ context.Context, _ task.Filter, _ *query.Pagination) ([]*task.Task, int64, error) {
	return nil, 0, nil
}

func (m *memTaskRepo) Update(_ context.Context, t *task.Task) error {
	cp := *t
	m.tasks[t.PublicID] = &cp
	return nil
}

func (m *memTaskRepo) Delete(_ context.Context, publicID string) error {
	delete(m.tasks, publicID)
	return nil
}

func (m *memTaskRepo) DueBefore(_ context.Context, _ time.Time, _ []task.Status) ([]*task.Task, error) {
	return nil, nil
}

func (m *memTaskRepo) CountByStatus(_ context.Context) (map[task.Status]int64, error) {
	return map[task.Status]int64{}, nil
}

type noopNotifier struct{}

func (noopNotifier) SendWelcome(context.Context, notify.Welcome) error             { return nil }
func (noopNotifier) SendOperatorAlert(context.Context, notify.OperatorAlert) error { return nil }
func (noopNotifier) SendTaskReminder(context.Context, notify.TaskReminder) error   { return nil }

type fixture struct {
	handler   *TaskHandler
	caller    *user.User
	colleague *user.User
	customer  *customer.Customer
	lead      *lead.Lead
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	userRepo := newMemUserRepo()
	codec, err := auth.NewTokenCodec("0123456789abcdef0123456789abcdef", time.Hour, "crm-api")
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	users := user.NewService(userRepo, auth.NewPasswordHasher(), codec, noopNotifier{}, "", zerolog.Nop())

	_, caller, err := users.Register(ctx, user.RegisterInput{Username: "nadia", Email: "nadia@crm.test", Password: "secret1"})
	if err != nil {
		t.Fatalf("seed caller failed: %v", err)
	}
	_, colleague, err := users.Register(ctx, user.RegisterInput{Username: "piotr", Email: "piotr@crm.test", Password: "secret1"})
	if err != nil {
		t.Fatalf("seed colleague failed: %v", err)
	}

	customers := customer.NewService(newMemCustomerRepo())
	cust, err := customers.Create(ctx, customer.CreateInput{Name: "Vandelay Industries", OwnerID: caller.ID})
	if err != nil {
		t.Fatalf("seed customer failed: %v", err)
	}

	leads := lead.NewService(newMemLeadRepo(), customers)
	ld, err := leads.Create(ctx, lead.CreateInput{Title: "Latex import deal", OwnerID: caller.ID})
	if err != nil {
		t.Fatalf("seed lead failed: %v", err)
	}

	tasks := task.NewService(newMemTaskRepo(), userRepo, noopNotifier{}, zerolog.Nop())

	return &fixture{
		handler:   NewTaskHandler(tasks, users, customers, leads),
		caller:    caller,
		colleague: colleague,
		customer:  cust,
		lead:      ld,
	}
}

func TestCreateTaskResolvesPublicRefs(t *testing.T) {
	f := newFixture(t)

	resp, err := f.handler.CreateTask(context.Background(), f.caller.ID, taskreq.CreateTaskRequest{
		Title:      "Follow up on samples",
		AssigneeID: &f.colleague.PublicID,
		CustomerID: &f.customer.PublicID,
		LeadID:     &f.lead.PublicID,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if resp.AssigneeID != f.colleague.ID {
		t.Errorf("assignee = %d, want %d", resp.AssigneeID, f.colleague.ID)
	}
	if resp.CustomerID == nil || *resp.CustomerID != f.customer.ID {
		t.Errorf("customer ref = %v, want %d", resp.CustomerID, f.customer.ID)
	}
	if resp.LeadID == nil || *resp.LeadID != f.lead.ID {
		t.Errorf("lead ref = %v, want %d", resp.LeadID, f.lead.ID)
	}
}

func TestCreateTaskDefaultsAssigneeToCaller(t *testing.T) {
	f := newFixture(t)

	resp, err := f.handler.CreateTask(context.Background(), f.caller.ID, taskreq.CreateTaskRequest{Title: "Prep demo"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if resp.AssigneeID != f.caller.ID {
		t.Errorf("assignee = %d, want caller %d", resp.AssigneeID, f.caller.ID)
	}
}

func TestCreateTaskRejectsUnknownAssignee(t *testing.T) {
	f := newFixture(t)

	missing := "user_0000000000000000"
	_, err := f.handler.CreateTask(context.Background(), f.caller.ID, taskreq.CreateTaskRequest{
		Title:      "Orphaned",
		AssigneeID: &missing,
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateTaskReassignsByPublicID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.handler.CreateTask(ctx, f.caller.ID, taskreq.CreateTaskRequest{Title: "Draft proposal"})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	updated, err := f.handler.UpdateTask(ctx, created.ID, taskreq.UpdateTaskRequest{
		AssigneeID: &f.colleague.PublicID,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.AssigneeID != f.colleague.ID {
		t.Errorf("assignee = %d, want %d", updated.AssigneeID, f.colleague.ID)
	}
}
