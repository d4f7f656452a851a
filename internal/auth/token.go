package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/league-service/internal/domain"
)

var (
	// ErrTokenInvalid covers malformed, forged and expired tokens.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenClassMismatch is returned when a token of the wrong class is
	// presented, e.g. a refresh token where an access token is required.
	ErrTokenClassMismatch = fmt.Errorf("%w: token class mismatch", ErrTokenInvalid)
)

// TokenManager issues and validates the signed access/refresh token pair.
// Decoding is a pure function of the token string and the secret; expiry is
// checked at decode time by the jwt validator.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager. The refresh TTL must exceed the access
// TTL so that a pair issued together always satisfies accessExp < refreshExp.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if accessTTL <= 0 {
		return nil, errors.New("access token TTL must be positive")
	}
	if refreshTTL <= accessTTL {
		return nil, errors.New("refresh token TTL must exceed access token TTL")
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// Claims describes the JWT payload.
type Claims struct {
	Role  domain.Role       `json:"role"`
	Class domain.TokenClass `json:"cls"`
	jwt.RegisteredClaims
}

// TokenPair carries both tokens issued at login.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Generate builds and signs a token of the given class for the subject.
func (tm *TokenManager) Generate(subjectID string, role domain.Role, class domain.TokenClass) (string, time.Time, error) {
	ttl := tm.accessTTL
	if class == domain.TokenClassRefresh {
		ttl = tm.refreshTTL
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Role:  role,
		Class: class,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// IssuePair mints an access/refresh pair for an authenticated subject.
func (tm *TokenManager) IssuePair(subjectID string, role domain.Role) (*TokenPair, error) {
	access, accessExp, err := tm.Generate(subjectID, role, domain.TokenClassAccess)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := tm.Generate(subjectID, role, domain.TokenClassRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Parse validates signature, expiry and token class, returning the claims.
// All failures map onto ErrTokenInvalid.
func (tm *TokenManager) Parse(tokenStr string, expected domain.TokenClass) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: bad claims", ErrTokenInvalid)
	}
	if claims.Class != expected {
		return nil, ErrTokenClassMismatch
	}
	return claims, nil
}

// AccessTTL reports the configured access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// RefreshTTL reports the configured refresh token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }
