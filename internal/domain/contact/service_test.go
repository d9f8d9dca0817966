package contact

import (
	"context"
	"sync"
	"testing"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/query"
	"crm-server/internal/utils/platformerrors"
)

type mockContactRepository struct {
	mu       sync.Mutex
	nextID   uint
	contacts map[string]*Contact
}

func newMockContactRepository() *mockContactRepository {
	return &mockContactRepository{contacts: make(map[string]*Contact)}
}

func (m *mockContactRepository) Create(_ context.Context, c *Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.contacts[c.PublicID] = &cp
	return nil
}

func (m *mockContactRepository) FindByPublicID(_ context.Context, publicID string) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[publicID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockContactRepository) List(_ context.Context, filter Filter, _ *query.Pagination) ([]*Contact, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Contact
	for _, c := range m.contacts {
		if filter.CustomerID != nil && c.CustomerID != *filter.CustomerID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (m *mockContactRepository) Update(_ context.Context, c *Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.contacts[c.PublicID] = &cp
	return nil
}

func (m *mockContactRepository) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contacts, publicID)
	return nil
}

type mockCustomerRepository struct {
	mu        sync.Mutex
	nextID    uint
	customers map[uint]*customer.Customer
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{customers: make(map[uint]*customer.Customer)}
}

func (m *mockCustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.customers[c.ID] = &cp
	return nil
}

func (m *mockCustomerRepository) FindByPublicID(_ context.Context, publicID string) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.PublicID == publicID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepository) FindByID(_ context.Context, id uint) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockCustomerRepository) List(_ context.Context, _ customer.Filter, _ *query.Pagination) ([]*customer.Customer, int64, error) {
	return nil, 0, nil
}

func (m *mockCustomerRepository) Update(_ context.Context, c *customer.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.customers[c.ID] = &cp
	return nil
}

func (m *mockCustomerRepository) Delete(_ context.Context, _ string) error { return nil }

func (m *mockCustomerRepository) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.customers)), nil
}

func newTestService(t *testing.T) (*Service, *customer.Customer) {
	t.Helper()
	custRepo := newMockCustomerRepository()
	customers := customer.NewService(custRepo)
	cust, err := customers.Create(context.Background(), customer.CreateInput{Name: "Acme Corp", OwnerID: 1})
	if err != nil {
		t.Fatalf("seed customer failed: %v", err)
	}
	return NewService(newMockContactRepository(), customers), cust
}

func TestCreateAttachesToCustomer(t *testing.T) {
	svc, cust := newTestService(t)

	c, err := svc.Create(context.Background(), CreateInput{
		CustomerID: cust.ID,
		FirstName:  "Dana",
		LastName:   "Reyes",
		Email:      "Dana.Reyes@Acme.COM",
		Position:   "Procurement",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if c.CustomerID != cust.ID {
		t.Fatalf("expected customer %d, got %d", cust.ID, c.CustomerID)
	}
	if c.Email != "dana.reyes@acme.com" {
		t.Fatalf("expected lowercased email, got %q", c.Email)
	}
}

func TestCreateRejectsUnknownCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{CustomerID: 999, FirstName: "Nobody"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCreateRequiresAName(t *testing.T) {
	svc, cust := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{CustomerID: cust.ID, Email: "anon@acme.test"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateCannotClearBothNames(t *testing.T) {
	svc, cust := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateInput{CustomerID: cust.ID, FirstName: "Dana"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	empty := ""
	_, err = svc.Update(ctx, c.PublicID, UpdateInput{FirstName: &empty})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	last := "Reyes"
	updated, err := svc.Update(ctx, c.PublicID, UpdateInput{FirstName: &empty, LastName: &last})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FirstName != "" || updated.LastName != "Reyes" {
		t.Fatalf("unexpected names %q %q", updated.FirstName, updated.LastName)
	}
}
