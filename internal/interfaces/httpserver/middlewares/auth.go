package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"crm-server/internal/domain"
	"crm-server/internal/domain/user"
	"crm-server/internal/interfaces/httpserver/responses"
	"crm-server/internal/utils/platformerrors"
)

const principalContextKey = "principal"

// AuthMiddleware validates JWT bearer tokens and resolves them to an
// active principal. Tokens of deactivated users are rejected even before
// they expire.
func AuthMiddleware(users *user.Service, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "8f1c5a9e-3d7b-4e2a-b6c8-4a9f2e7d1b50")
			return
		}

		usr, err := users.Authenticate(c.Request.Context(), token)
		if err != nil {
			responses.HandleError(c, err, "authentication failed")
			return
		}

		setPrincipal(c, usr.Principal())
		c.Next()
	}
}

// RequireRoles rejects authenticated principals whose role is outside the
// allowed set. Run it after AuthMiddleware.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "2d8b4f6a-9c1e-4a3e-8b7d-6e2a9c5f1d80")
			return
		}
		if !principal.HasRole(roles...) {
			responses.HandleNewError(c, platformerrors.ErrorTypeForbidden, "insufficient role", "6e3a1c8d-5b9f-4d7e-a2b4-8c6f1e9a3d20")
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

func setPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalContextKey, principal)
	// expose commonly-used identity values for downstream handlers
	c.Set("user_id", principal.UserID)
	c.Set("user_email", principal.Email)
	c.Set("user_role", string(principal.Role))
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
