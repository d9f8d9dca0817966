package leadhandler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/lead"
	"crm-server/internal/domain/notify"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/auth"
	"crm-server/internal/interfaces/httpserver/requests/leadreq"
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

type noopNotifier struct{}

func (noopNotifier) SendWelcome(context.Context, notify.Welcome) error             { return nil }
func (noopNotifier) SendOperatorAlert(context.Context, notify.OperatorAlert) error { return nil }
func (noopNotifier) SendTaskReminder(context.Context, notify.TaskReminder) error   { return nil }

type fixture struct {
	handler  *LeadHandler
	owner    *user.User
	newOwner *user.User
	customer *customer.Customer
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

	_, owner, err := users.Register(ctx, user.RegisterInput{Username: "rosa", Email: "rosa@crm.test", Password: "secret1"})
	if err != nil {
		t.Fatalf("seed owner failed: %v", err)
	}
	_, newOwner, err := users.Register(ctx, user.RegisterInput{Username: "theo", Email: "theo@crm.test", Password: "secret1"})
	if err != nil {
		t.Fatalf("seed second owner failed: %v", err)
	}

	customers := customer.NewService(newMemCustomerRepo())
	cust, err := customers.Create(ctx, customer.CreateInput{Name: "Initech", OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("seed customer failed: %v", err)
	}

	leads := lead.NewService(newMemLeadRepo(), customers)

	return &fixture{
		handler:  NewLeadHandler(leads, customers, users),
		owner:    owner,
		newOwner: newOwner,
		customer: cust,
	}
}

func TestCreateLeadResolvesCustomerRef(t *testing.T) {
	f := newFixture(t)

	resp, err := f.handler.CreateLead(context.Background(), f.owner.ID, leadreq.CreateLeadRequest{
		Title:      "TPS migration",
		CustomerID: &f.customer.PublicID,
	})
	if err != nil {
		t.Fatalf("CreateLead() error = %v", err)
	}
	if resp.CustomerID == nil || *resp.CustomerID != f.customer.ID {
		t.Errorf("customer ref = %v, want %d", resp.CustomerID, f.customer.ID)
	}
	if resp.OwnerID != f.owner.ID {
		t.Errorf("owner = %d, want %d", resp.OwnerID, f.owner.ID)
	}
}

func TestCreateLeadRejectsUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	missing := "cust_0000000000000000"
	_, err := f.handler.CreateLead(context.Background(), f.owner.ID, leadreq.CreateLeadRequest{
		Title:      "Dangling deal",
		CustomerID: &missing,
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateLeadReassignsOwnerByPublicID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.handler.CreateLead(ctx, f.owner.ID, leadreq.CreateLeadRequest{Title: "Renewal"})
	if err != nil {
		t.Fatalf("CreateLead() error = %v", err)
	}

	updated, err := f.handler.UpdateLead(ctx, created.ID, leadreq.UpdateLeadRequest{
		OwnerID:    &f.newOwner.PublicID,
		CustomerID: &f.customer.PublicID,
	})
	if err != nil {
		t.Fatalf("UpdateLead() error = %v", err)
	}
	if updated.OwnerID != f.newOwner.ID {
		t.Errorf("owner = %d, want %d", updated.OwnerID, f.newOwner.ID)
	}
	if updated.CustomerID == nil || *updated.CustomerID != f.customer.ID {
		t.Errorf("customer ref = %v, want %d", updated.CustomerID, f.customer.ID)
	}
}
