package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/repository"
)

const principalKey = "auth_principal"

// AccessTokenCookie is the cookie carrying the access token.
const AccessTokenCookie = "accessToken"

// RefreshTokenCookie is the path-scoped cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// Principal represents the authenticated caller. The role is re-read from the
// user store on every request, not trusted from the token, so role changes
// take effect immediately.
type Principal struct {
	UserID   string
	Username string
	Role     domain.Role
}

// AuthMiddleware extracts an access token from the request, validates it and
// loads the live principal. It never rejects a request itself: decode or
// lookup failures leave the request unauthenticated and the route guards
// decide whether that matters. Public and protected routes share this filter.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Handle runs once per inbound request.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := extractAccessToken(c)
	if tokenStr == "" {
		return c.Next()
	}

	claims, err := m.tokens.Parse(tokenStr, domain.TokenClassAccess)
	if err != nil {
		m.logger.Debug("rejected access token", zap.Error(err))
		return c.Next()
	}

	user, err := m.users.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Subject was deleted after the token was issued.
			m.logger.Debug("token subject no longer exists", zap.String("subject", claims.Subject))
			return c.Next()
		}
		return err
	}

	c.Locals(principalKey, &Principal{UserID: user.ID, Username: user.Username, Role: user.Role})
	return c.Next()
}

// extractAccessToken looks in the access cookie first, then falls back to the
// bearer authorization header for API clients. First found wins.
func extractAccessToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(AccessTokenCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
