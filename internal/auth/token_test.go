package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/league-service/internal/domain"
)

const testSecret = "test-secret-key"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret, 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	return tm
}

func TestNewTokenManagerValidation(t *testing.T) {
	cases := []struct {
		name       string
		secret     string
		accessTTL  time.Duration
		refreshTTL time.Duration
	}{
		{"empty secret", "", 15 * time.Minute, 24 * time.Hour},
		{"zero access ttl", testSecret, 0, 24 * time.Hour},
		{"refresh equal to access", testSecret, 15 * time.Minute, 15 * time.Minute},
		{"refresh shorter than access", testSecret, time.Hour, 15 * time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTokenManager(tc.secret, tc.accessTTL, tc.refreshTTL); err == nil {
				t.Fatal("expected constructor to fail")
			}
		})
	}
}

func TestGenerateAndParseRoundTrip(t *testing.T) {
	tm := newTestManager(t)

	token, expiresAt, err := tm.Generate("user-1", domain.RoleAvenger, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatal("expiry should be in the future")
	}

	claims, err := tm.Parse(token, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Role != domain.RoleAvenger {
		t.Errorf("role = %q, want AVENGER", claims.Role)
	}
	if claims.Class != domain.TokenClassAccess {
		t.Errorf("class = %q, want ACCESS", claims.Class)
	}
}

func TestParseRejectsWrongClass(t *testing.T) {
	tm := newTestManager(t)

	pair, err := tm.IssuePair("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}

	if _, err := tm.Parse(pair.RefreshToken, domain.TokenClassAccess); !errors.Is(err, ErrTokenClassMismatch) {
		t.Errorf("refresh token accepted as access token: %v", err)
	}
	if _, err := tm.Parse(pair.AccessToken, domain.TokenClassRefresh); !errors.Is(err, ErrTokenClassMismatch) {
		t.Errorf("access token accepted as refresh token: %v", err)
	}
	if !errors.Is(ErrTokenClassMismatch, ErrTokenInvalid) {
		t.Error("class mismatch should be a token-invalid error")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := newTestManager(t)

	claims := &Claims{
		Role:  domain.RoleAvenger,
		Class: domain.TokenClassAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := tm.Parse(token, domain.TokenClassAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expired token accepted: %v", err)
	}
}

func TestParseRejectsForgedSignature(t *testing.T) {
	tm := newTestManager(t)

	forger, err := NewTokenManager("attacker-secret", 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	forged, _, err := forger.Generate("user-1", domain.RoleAdmin, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tm.Parse(forged, domain.TokenClassAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("forged token accepted: %v", err)
	}
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	tm := newTestManager(t)

	claims := &Claims{
		Role:  domain.RoleAdmin,
		Class: domain.TokenClassAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := tm.Parse(token, domain.TokenClassAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("alg=none token accepted: %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := newTestManager(t)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := tm.Parse(tok, domain.TokenClassAccess); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Parse(%q) = %v, want ErrTokenInvalid", tok, err)
		}
	}
}

func TestIssuePairExpiryOrdering(t *testing.T) {
	tm := newTestManager(t)

	pair, err := tm.IssuePair("user-1", domain.RoleAvenger)
	if err != nil {
		t.Fatalf("IssuePair failed: %v", err)
	}
	if !pair.AccessExpiresAt.Before(pair.RefreshExpiresAt) {
		t.Errorf("access expiry %v should precede refresh expiry %v",
			pair.AccessExpiresAt, pair.RefreshExpiresAt)
	}
}
