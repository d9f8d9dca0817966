package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"crm-server/internal/domain"
	"crm-server/internal/domain/notify"
	"crm-server/internal/domain/query"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/auth"
	"crm-server/internal/interfaces/httpserver/middlewares"
)

// stubUserRepository serves a single user keyed by username.
type stubUserRepository struct {
	usr *user.User
}

func (s *stubUserRepository) Create(ctx context.Context, usr *user.User) error { return nil }

func (s *stubUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if s.usr != nil && s.usr.ID == id {
		copied := *s.usr
		return &copied, nil
	}
	return nil, nil
}

func (s *stubUserRepository) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	if s.usr != nil && s.usr.PublicID == publicID {
		copied := *s.usr
		return &copied, nil
	}
	return nil, nil
}

func (s *stubUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if s.usr != nil && s.usr.Username == username {
		copied := *s.usr
		return &copied, nil
	}
	return nil, nil
}

func (s *stubUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.usr != nil && s.usr.Username == username, nil
}

func (s *stubUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.usr != nil && s.usr.Email == email, nil
}

func (s *stubUserRepository) List(ctx context.Context, filter user.Filter, pagination *query.Pagination) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserRepository) Update(ctx context.Context, usr *user.User) error { return nil }

func (s *stubUserRepository) Delete(ctx context.Context, publicID string) error { return nil }

func (s *stubUserRepository) CountActive(ctx context.Context) (int64, error) { return 0, nil }

type noopNotifier struct{}

func (noopNotifier) SendWelcome(ctx context.Context, msg notify.Welcome) error { return nil }
func (noopNotifier) SendOperatorAlert(ctx context.Context, msg notify.OperatorAlert) error {
	return nil
}
func (noopNotifier) SendTaskReminder(ctx context.Context, msg notify.TaskReminder) error {
	return nil
}

func newAuthFixture(t *testing.T, role domain.Role, active bool) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := auth.NewTokenCodec("0123456789abcdef0123456789abcdef", time.Hour, "crm-api")
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}

	repo := &stubUserRepository{usr: &user.User{
		ID:       7,
		PublicID: "user_test7",
		Username: "grace",
		Email:    "grace@example.com",
		Role:     role,
		Active:   active,
	}}
	svc := user.NewService(repo, auth.NewPasswordHasher(), codec, noopNotifier{}, "", zerolog.Nop())

	token, err := codec.Issue("grace")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	router := gin.New()
	authed := router.Group("/", middlewares.AuthMiddleware(svc, zerolog.Nop()))
	authed.GET("/whoami", func(c *gin.Context) {
		principal, _ := middlewares.PrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": principal.Username, "role": string(principal.Role)})
	})
	authed.GET("/admin", middlewares.RequireRoles(domain.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router, token
}

func doRequest(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router, _ := newAuthFixture(t, domain.RoleSalesRep, true)

	rec := doRequest(router, "/whoami", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router, token := newAuthFixture(t, domain.RoleSalesRep, true)

	rec := doRequest(router, "/whoami", token) // missing Bearer prefix
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router, _ := newAuthFixture(t, domain.RoleSalesRep, true)

	rec := doRequest(router, "/whoami", "Bearer not-a-real-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareResolvesPrincipal(t *testing.T) {
	router, token := newAuthFixture(t, domain.RoleManager, true)

	rec := doRequest(router, "/whoami", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestAuthMiddlewareRejectsDeactivatedUser(t *testing.T) {
	router, token := newAuthFixture(t, domain.RoleSalesRep, false)

	rec := doRequest(router, "/whoami", "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRolesForbidsOutsideSet(t *testing.T) {
	router, token := newAuthFixture(t, domain.RoleSalesRep, true)

	rec := doRequest(router, "/admin", "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	router, token := newAuthFixture(t, domain.RoleAdmin, true)

	rec := doRequest(router, "/admin", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}
