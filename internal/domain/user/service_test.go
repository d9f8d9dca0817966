package user_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"crm-server/internal/domain"
	"crm-server/internal/domain/notify"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/auth"
	"crm-server/internal/utils/platformerrors"
)

// mockUserRepository is an in-memory implementation of user.Repository.
type mockUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*user.User // keyed by username
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*user.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, usr *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[usr.Username]; exists {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "duplicate username", nil, "")
	}
	m.nextID++
	usr.ID = m.nextID
	usr.CreatedAt = time.Now()
	usr.UpdatedAt = usr.CreatedAt
	copied := *usr
	m.users[usr.Username] = &copied
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.PublicID == publicID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[username]
	return ok, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.Filter, pagination *query.Pagination) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) Update(ctx context.Context, usr *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *usr
	m.users[usr.Username] = &copied
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, u := range m.users {
		if u.PublicID == publicID {
			delete(m.users, name)
			return nil
		}
	}
	return nil
}

func (m *mockUserRepository) CountActive(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// recordingNotifier records deliveries; failures are simulated via fail.
type recordingNotifier struct {
	mu       sync.Mutex
	fail     bool
	welcomes []notify.Welcome
	alerts   []notify.OperatorAlert
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, msg notify.Welcome) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return context.DeadlineExceeded
	}
	n.welcomes = append(n.welcomes, msg)
	return nil
}

func (n *recordingNotifier) SendOperatorAlert(ctx context.Context, msg notify.OperatorAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return context.DeadlineExceeded
	}
	n.alerts = append(n.alerts, msg)
	return nil
}

func (n *recordingNotifier) SendTaskReminder(ctx context.Context, msg notify.TaskReminder) error {
	return nil
}

func newTestService(t *testing.T, notifier notify.Notifier) (*user.Service, *mockUserRepository, *auth.TokenCodec) {
	t.Helper()
	repo := newMockUserRepository()
	codec, err := auth.NewTokenCodec("0123456789abcdef0123456789abcdef", time.Hour, "crm-api")
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	svc := user.NewService(repo, auth.NewPasswordHasher(), codec, notifier, "ops@example.com", zerolog.Nop())
	return svc, repo, codec
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, codec := newTestService(t, &recordingNotifier{})

	token, usr, err := svc.Register(ctx, user.RegisterInput{
		Username:  "alice",
		Email:     "alice@x.com",
		Password:  "secret1",
		FirstName: "A",
		LastName:  "L",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if usr.Role != user.DefaultRole {
		t.Errorf("Register() role = %v, want %v", usr.Role, user.DefaultRole)
	}

	claims, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("token subject = %q, want %q", claims.Subject, "alice")
	}

	if _, _, err := svc.Login(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	_, _, err = svc.Login(ctx, "alice", "wrong")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Errorf("Login(wrong password) error = %v, want unauthorized", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, &recordingNotifier{})

	if _, _, err := svc.Register(ctx, user.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, wrongPassErr := svc.Login(ctx, "alice", "wrong")
	_, _, noUserErr := svc.Login(ctx, "nobody", "whatever")

	// Deactivate and collect the third failure mode.
	stored, _ := repo.FindByUsername(ctx, "alice")
	stored.Active = false
	if err := repo.Update(ctx, stored); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	_, _, inactiveErr := svc.Login(ctx, "alice", "secret1")

	for name, err := range map[string]error{
		"wrong password":   wrongPassErr,
		"unknown username": noUserErr,
		"inactive account": inactiveErr,
	} {
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
			t.Fatalf("%s: error = %v, want unauthorized", name, err)
		}
	}

	var wrongPE, noUserPE, inactivePE *platformerrors.PlatformError
	wrongPE = wrongPassErr.(*platformerrors.PlatformError)
	noUserPE = noUserErr.(*platformerrors.PlatformError)
	inactivePE = inactiveErr.(*platformerrors.PlatformError)

	if wrongPE.Message != noUserPE.Message || noUserPE.Message != inactivePE.Message {
		t.Errorf("login failure messages differ: %q / %q / %q", wrongPE.Message, noUserPE.Message, inactivePE.Message)
	}
}

func TestRegisterConflicts(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, &recordingNotifier{})

	if _, _, err := svc.Register(ctx, user.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, _, err := svc.Register(ctx, user.RegisterInput{Username: "alice", Email: "other@x.com", Password: "pw"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Fatalf("Register(duplicate username) error = %v, want conflict", err)
	}
	if token != "" {
		t.Error("conflicting registration still issued a token")
	}

	_, _, err = svc.Register(ctx, user.RegisterInput{Username: "bob", Email: "alice@x.com", Password: "pw"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
		t.Fatalf("Register(duplicate email) error = %v, want conflict", err)
	}

	// Both fields reported when both collide.
	_, _, err = svc.Register(ctx, user.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "pw"})
	pe := err.(*platformerrors.PlatformError)
	fields, _ := pe.Context["fields"].([]string)
	if len(fields) != 2 {
		t.Errorf("conflict fields = %v, want both username and email", fields)
	}

	if got := len(repo.users); got != 1 {
		t.Errorf("repository holds %d users, want 1", got)
	}
}

func TestAuthenticateRechecksActiveFlag(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t, &recordingNotifier{})

	token, _, err := svc.Register(ctx, user.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Authenticate(ctx, token); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}

	// Deactivation revokes access even though the token is unexpired.
	stored, _ := repo.FindByUsername(ctx, "alice")
	stored.Active = false
	if err := repo.Update(ctx, stored); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	_, err = svc.Authenticate(ctx, token)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Errorf("Authenticate(deactivated) error = %v, want unauthorized", err)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, &recordingNotifier{})

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Authenticate(ctx, raw); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
			t.Errorf("Authenticate(%q) error = %v, want unauthorized", raw, err)
		}
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepository()
	codec, err := auth.NewTokenCodec("0123456789abcdef0123456789abcdef", time.Nanosecond, "crm-api")
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	svc := user.NewService(repo, auth.NewPasswordHasher(), codec, &recordingNotifier{}, "ops@example.com", zerolog.Nop())

	// The account stays active, so only expiry can fail the check. The
	// signature itself is valid.
	token, _, err := svc.Register(ctx, user.RegisterInput{Username: "carol", Email: "carol@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	_, err = svc.Authenticate(ctx, token)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
		t.Errorf("Authenticate(expired token) error = %v, want unauthorized", err)
	}
}

func TestRegisterSurvivesNotificationFailure(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{fail: true}
	svc, _, _ := newTestService(t, notifier)

	token, _, err := svc.Register(ctx, user.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v, notification failure must not propagate", err)
	}
	if token == "" {
		t.Error("Register() returned empty token")
	}
}

func TestUpdatePartialPatch(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, &recordingNotifier{})

	_, usr, err := svc.Register(ctx, user.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "secret1", FirstName: "A", LastName: "L"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	first := "Alicia"
	role := domain.RoleManager
	updated, err := svc.Update(ctx, usr.PublicID, user.UpdateInput{FirstName: &first, Role: &role})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.FirstName != "Alicia" {
		t.Errorf("FirstName = %q, want %q", updated.FirstName, "Alicia")
	}
	if updated.Role != domain.RoleManager {
		t.Errorf("Role = %v, want MANAGER", updated.Role)
	}
	// Untouched fields keep their values.
	if updated.LastName != "L" || updated.Email != "alice@x.com" {
		t.Errorf("unrelated fields changed: %+v", updated)
	}
}
