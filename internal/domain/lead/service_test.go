package lead

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"crm-server/internal/domain/customer"
	"crm-server/internal/domain/query"
	"crm-server/internal/utils/platformerrors"
)

type mockLeadRepository struct {
	mu     sync.Mutex
	nextID uint
	leads  map[string]*Lead
}

func newMockLeadRepository() *mockLeadRepository {
	return &mockLeadRepository{leads: make(map[string]*Lead)}
}

func (m *mockLeadRepository) Create(_ context.Context, ld *Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ld.ID = m.nextID
	cp := *ld
	m.leads[ld.PublicID] = &cp
	return nil
}

func (m *mockLeadRepository) FindByPublicID(_ context.Context, publicID string) (*Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ld, ok := m.leads[publicID]
	if !ok {
		return nil, nil
	}
	cp := *ld
	return &cp, nil
}

func (m *mockLeadRepository) List(_ context.Context, filter Filter, _ *query.Pagination) ([]*Lead, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Lead
	for _, ld := range m.leads {
		if filter.Status != nil && ld.Status != *filter.Status {
			continue
		}
		cp := *ld
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (m *mockLeadRepository) Update(_ context.Context, ld *Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ld
	m.leads[ld.PublicID] = &cp
	return nil
}

func (m *mockLeadRepository) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.leads, publicID)
	return nil
}

func (m *mockLeadRepository) CountByStatus(_ context.Context) (map[Status]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[Status]int64)
	for _, ld := range m.leads {
		counts[ld.Status]++
	}
	return counts, nil
}

type mockCustomerRepository struct {
	mu        sync.Mutex
	nextID    uint
	customers map[string]*customer.Customer
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{customers: make(map[string]*customer.Customer)}
}

func (m *mockCustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.customers[c.PublicID] = &cp
	return nil
}

func (m *mockCustomerRepository) FindByPublicID(_ context.Context, publicID string) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[publicID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockCustomerRepository) FindByID(_ context.Context, id uint) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepository) List(_ context.Context, _ customer.Filter, _ *query.Pagination) ([]*customer.Customer, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*customer.Customer
	for _, c := range m.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (m *mockCustomerRepository) Update(_ context.Context, c *customer.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.customers[c.PublicID] = &cp
	return nil
}

func (m *mockCustomerRepository) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.customers, publicID)
	return nil
}

func (m *mockCustomerRepository) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.customers)), nil
}

func newTestService() (*Service, *mockLeadRepository, *mockCustomerRepository) {
	leadRepo := newMockLeadRepository()
	custRepo := newMockCustomerRepository()
	return NewService(leadRepo, customer.NewService(custRepo)), leadRepo, custRepo
}

func TestCreateDefaultsToNew(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ld, err := svc.Create(ctx, CreateInput{
		Title:          "Acme expansion",
		ContactEmail:   "Buyer@Acme.COM",
		EstimatedValue: decimal.NewFromInt(5000),
		OwnerID:        7,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ld.Status != StatusNew {
		t.Fatalf("expected status %s, got %s", StatusNew, ld.Status)
	}
	if !strings.HasPrefix(ld.PublicID, "lead_") {
		t.Fatalf("unexpected public ID %q", ld.PublicID)
	}
	if ld.ContactEmail != "buyer@acme.com" {
		t.Fatalf("expected lowercased email, got %q", ld.ContactEmail)
	}
}

func TestCreateRejectsNegativeValue(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		Title:          "Bad deal",
		EstimatedValue: decimal.NewFromInt(-1),
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransitionConvertCreatesCustomer(t *testing.T) {
	svc, _, custRepo := newTestService()
	ctx := context.Background()

	ld, err := svc.Create(ctx, CreateInput{
		Title:        "Globex renewal",
		ContactName:  "Hank Scorpio",
		ContactEmail: "hank@globex.test",
		ContactPhone: "555-0100",
		OwnerID:      3,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	converted, err := svc.Transition(ctx, ld.PublicID, StatusConverted)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if converted.Status != StatusConverted {
		t.Fatalf("expected status %s, got %s", StatusConverted, converted.Status)
	}
	if converted.CustomerID == nil {
		t.Fatal("expected a customer to be linked")
	}

	cust, err := custRepo.FindByID(ctx, *converted.CustomerID)
	if err != nil || cust == nil {
		t.Fatalf("linked customer not found: %v", err)
	}
	if cust.Name != "Hank Scorpio" {
		t.Fatalf("expected customer named from contact, got %q", cust.Name)
	}
	if cust.Email != "hank@globex.test" {
		t.Fatalf("unexpected customer email %q", cust.Email)
	}
	if cust.OwnerID != 3 {
		t.Fatalf("expected owner carried over, got %d", cust.OwnerID)
	}
}

func TestTransitionConvertKeepsExistingCustomer(t *testing.T) {
	svc, _, custRepo := newTestService()
	ctx := context.Background()

	existing := uint(42)
	ld, err := svc.Create(ctx, CreateInput{Title: "Attached deal", CustomerID: &existing})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	converted, err := svc.Transition(ctx, ld.PublicID, StatusConverted)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if converted.CustomerID == nil || *converted.CustomerID != existing {
		t.Fatalf("expected existing customer link to survive, got %v", converted.CustomerID)
	}
	if total, _ := custRepo.Count(ctx); total != 0 {
		t.Fatalf("expected no new customer rows, got %d", total)
	}
}

func TestTransitionConvertedIsTerminal(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ld, err := svc.Create(ctx, CreateInput{Title: "Closed deal", ContactName: "Buyer"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Transition(ctx, ld.PublicID, StatusConverted); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	_, err = svc.Transition(ctx, ld.PublicID, StatusLost)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransitionLostIsTerminal(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ld, err := svc.Create(ctx, CreateInput{Title: "Went with a competitor"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Transition(ctx, ld.PublicID, StatusLost); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	for _, next := range []Status{StatusQualified, StatusContacted, StatusConverted} {
		if _, err := svc.Transition(ctx, ld.PublicID, next); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
			t.Fatalf("expected validation error moving lost lead to %s, got %v", next, err)
		}
	}

	current, err := svc.GetByPublicID(ctx, ld.PublicID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if current.Status != StatusLost {
		t.Fatalf("expected lead to stay %s, got %s", StatusLost, current.Status)
	}
}

func TestUpdatePartialPatch(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	ld, err := svc.Create(ctx, CreateInput{Title: "Initech rollout", Source: "referral", Notes: "warm intro"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	notes := "signed NDA"
	updated, err := svc.Update(ctx, ld.PublicID, UpdateInput{Notes: &notes})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Notes != "signed NDA" {
		t.Fatalf("expected patched notes, got %q", updated.Notes)
	}
	if updated.Title != "Initech rollout" || updated.Source != "referral" {
		t.Fatal("untouched fields changed")
	}
}

func TestParseStatus(t *testing.T) {
	if _, ok := ParseStatus("qualified"); !ok {
		t.Fatal("expected lowercase status to parse")
	}
	if _, ok := ParseStatus("ARCHIVED"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
}
