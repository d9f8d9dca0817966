package user

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"crm-server/internal/domain"
	"crm-server/internal/domain/notify"
	"crm-server/internal/domain/query"
	"crm-server/internal/infrastructure/auth"
	"crm-server/internal/utils/idgen"
	"crm-server/internal/utils/platformerrors"
)

// DefaultRole is assigned to self-registered accounts.
const DefaultRole = domain.RoleSalesRep

const notifyTimeout = 10 * time.Second

// invalidCredentialsMsg is shared by every login failure path so that a
// missing username, a deactivated account and a wrong password are
// indistinguishable to the caller.
const invalidCredentialsMsg = "invalid credentials"

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateInput patches a user; nil fields are left untouched. Username is
// deliberately absent: it is immutable.
type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *domain.Role
	Active    *bool
}

// Service is the authentication gate: it turns credentials into tokens at
// login and tokens back into users on every request. It also owns account
// management for the admin surface.
type Service struct {
	repo     Repository
	hasher   *auth.PasswordHasher
	codec    *auth.TokenCodec
	notifier notify.Notifier
	operator string
	logger   zerolog.Logger
}

// NewService constructs the Service with required dependencies.
func NewService(
	repo Repository,
	hasher *auth.PasswordHasher,
	codec *auth.TokenCodec,
	notifier notify.Notifier,
	operatorEmail string,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		notifier: notifier,
		operator: operatorEmail,
		logger:   logger,
	}
}

// Login verifies the credentials and issues a token. Unknown username,
// deactivated account and wrong password all fail with the same error; the
// unknown-username path still burns a bcrypt comparison to keep its timing
// in the same class as a real check.
func (s *Service) Login(ctx context.Context, username, password string) (string, *User, error) {
	usr, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user")
	}

	if usr == nil {
		s.hasher.VerifyDummy(password)
		return "", nil, s.unauthorized(ctx)
	}
	if !usr.Active {
		s.hasher.VerifyDummy(password)
		return "", nil, s.unauthorized(ctx)
	}
	if !s.hasher.Verify(password, usr.PasswordHash) {
		return "", nil, s.unauthorized(ctx)
	}

	token, err := s.codec.Issue(usr.Username)
	if err != nil {
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to issue token")
	}
	return token, usr, nil
}

// Register creates an account with the default role and behaves like a
// successful login. Username and email uniqueness are checked independently
// so the client can report both conflicts. Welcome and operator
// notifications are fire-and-forget.
func (s *Service) Register(ctx context.Context, input RegisterInput) (string, *User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	usernameTaken, err := s.repo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check username")
	}
	emailTaken, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check email")
	}
	if usernameTaken || emailTaken {
		fields := make([]string, 0, 2)
		if usernameTaken {
			fields = append(fields, "username")
		}
		if emailTaken {
			fields = append(fields, "email")
		}
		return "", nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict,
			"account already exists",
			nil,
			"c41b2f6e-9a18-4e0d-8c3a-1f5d2b7e4a90",
			map[string]any{"fields": fields},
		)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to hash password")
	}

	publicID, err := idgen.GenerateSecureID("user", 16)
	if err != nil {
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate user ID")
	}

	usr := &User{
		PublicID:     publicID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         DefaultRole,
		Active:       true,
	}

	if err := s.repo.Create(ctx, usr); err != nil {
		// The storage layer enforces uniqueness too; a race surfaces here.
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			return "", nil, err
		}
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create user")
	}

	s.dispatchRegistrationNotices(usr)

	token, err := s.codec.Issue(usr.Username)
	if err != nil {
		return "", nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to issue token")
	}
	return token, usr, nil
}

// Authenticate resolves a bearer token to an active user. The account is
// re-checked against storage on every call: tokens cannot be revoked
// individually, so deactivating the account is the revocation mechanism.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*User, error) {
	claims, err := s.codec.Decode(rawToken)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid token", err, "7d2e9b1c-4f6a-4c8e-9d3b-2a1f5e8c7b60")
	}
	if s.codec.IsExpired(claims) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid token", auth.ErrInvalidToken, "7d2e9b1c-4f6a-4c8e-9d3b-2a1f5e8c7b60")
	}

	usr, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve token subject")
	}
	if usr == nil || !usr.Active {
		return nil, s.unauthorized(ctx)
	}
	return usr, nil
}

// GetByPublicID returns a user or a not-found error.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	if !idgen.ValidateIDFormat(publicID, "user") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "a1f7d4b9-3e6c-4c2a-b8f5-7d9e2a4c1f80")
	}
	usr, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get user")
	}
	if usr == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "e8a4c2d1-6b3f-4a9e-8c5d-7f2b1e9a4c30")
	}
	return usr, nil
}

// List returns users matching the filter with pagination.
func (s *Service) List(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*User, int64, error) {
	users, total, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list users")
	}
	return users, total, nil
}

// Update applies the non-nil fields of input to the user identified by
// publicID. Role and Active changes are the admin surface; deactivation
// takes effect on the target's next request.
func (s *Service) Update(ctx context.Context, publicID string, input UpdateInput) (*User, error) {
	usr, err := s.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email != usr.Email {
			taken, err := s.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check email")
			}
			if taken {
				return nil, platformerrors.NewErrorWithContext(
					ctx,
					platformerrors.LayerDomain,
					platformerrors.ErrorTypeConflict,
					"email already in use",
					nil,
					"f3b8d1a2-5c7e-4f9b-a6d4-8e1c2b9f5a70",
					map[string]any{"fields": []string{"email"}},
				)
			}
			usr.Email = email
		}
	}
	if input.FirstName != nil {
		usr.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		usr.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		usr.Role = *input.Role
	}
	if input.Active != nil {
		usr.Active = *input.Active
	}

	if err := s.repo.Update(ctx, usr); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update user")
	}
	return usr, nil
}

// Delete removes a user account.
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if _, err := s.GetByPublicID(ctx, publicID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete user")
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account if no account exists with
// the given username. Used by the data initializer at startup.
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up admin user")
	}
	if existing != nil {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to hash admin password")
	}
	publicID, err := idgen.GenerateSecureID("user", 16)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate user ID")
	}

	admin := &User{
		PublicID:     publicID,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create admin user")
	}
	s.logger.Info().Str("username", username).Msg("bootstrap admin account created")
	return nil
}

func (s *Service) unauthorized(ctx context.Context) *platformerrors.PlatformError {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypeUnauthorized,
		invalidCredentialsMsg,
		nil,
		"9b6f3a2e-1d8c-4b5a-9e7f-4c2d8a1b6e50",
	)
}

// dispatchRegistrationNotices sends the welcome and operator notifications
// on a detached context. Delivery failures are logged and swallowed: the
// registration already succeeded. The welcome payload intentionally omits
// the plaintext password.
func (s *Service) dispatchRegistrationNotices(usr *User) {
	if s.notifier == nil {
		return
	}

	welcome := notify.Welcome{
		Username:  usr.Username,
		Email:     usr.Email,
		FirstName: usr.FirstName,
	}
	alert := notify.OperatorAlert{
		Event:    "user_registered",
		Username: usr.Username,
		Email:    usr.Email,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.SendWelcome(ctx, welcome); err != nil {
			s.logger.Warn().Err(err).Str("username", usr.Username).Msg("welcome notification failed")
		}
		if s.operator == "" {
			return
		}
		if err := s.notifier.SendOperatorAlert(ctx, alert); err != nil {
			s.logger.Warn().Err(err).Msg("operator notification failed")
		}
	}()
}
