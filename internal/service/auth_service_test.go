package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/config"
	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	seq    int
	byID   map[string]*domain.User
	byName map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[string]*domain.User),
		byName: make(map[string]*domain.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[user.Username]; taken {
		return repository.ErrDuplicate
	}
	r.seq++
	user.ID = userID(r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.byID[user.ID] = &stored
	r.byName[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	*existing = *user
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id string, alive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Alive = alive
	return nil
}

func (r *fakeUserRepo) AdjustBalance(ctx context.Context, id string, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Balance += delta
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byName[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	users, _ := r.ListByRole(ctx, role)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byName, u.Username)
		delete(r.byID, id)
	}
}

func (r *fakeUserRepo) setRole(id string, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.Role = role
	}
}

func userID(seq int) string {
	return fmt.Sprintf("user-%d", seq)
}

const authTestSecret = "auth-service-test-secret"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:              authTestSecret,
		AccessTokenTTLMinutes:  15,
		RefreshTokenTTLMinutes: 60,
		BcryptCost:             4,
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	svc, err := NewAuthService(testAuthConfig(), repo, nil)
	if err != nil {
		t.Fatalf("NewAuthService failed: %v", err)
	}
	return svc, repo
}

func TestRegisterCreatesAvenger(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "peter", "peter@league.io", "web-head")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != domain.RoleAvenger {
		t.Errorf("role = %q, want AVENGER", user.Role)
	}
	if !user.Alive {
		t.Error("new member should start alive")
	}
	if user.Balance != 0 {
		t.Errorf("balance = %v, want 0", user.Balance)
	}
	if user.PasswordHash == "web-head" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "peter", "peter@league.io", "pw1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "peter", "other@league.io", "pw2"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "natasha", "nat@league.io", "red-room")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, pair, err := svc.Login(ctx, "natasha", "red-room")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user id = %q, want %q", user.ID, registered.ID)
	}
	if !pair.AccessExpiresAt.Before(pair.RefreshExpiresAt) {
		t.Error("access token should expire before refresh token")
	}

	claims, err := svc.TokenManager().Parse(pair.AccessToken, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Parse access token failed: %v", err)
	}
	if claims.Subject != registered.ID {
		t.Errorf("subject = %q, want %q", claims.Subject, registered.ID)
	}
	if _, err := svc.TokenManager().Parse(pair.RefreshToken, domain.TokenClassRefresh); err != nil {
		t.Fatalf("Parse refresh token failed: %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "clint", "clint@league.io", "arrow"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, err := svc.Login(ctx, "clint", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("wrong password err = %v, want ErrBadCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "arrow"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("unknown username err = %v, want ErrBadCredentials", err)
	}
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "wanda", "wanda@league.io", "hex")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, pair, err := svc.Login(ctx, "wanda", "hex")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	access, expiresAt, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Error("new access token already expired")
	}
	claims, err := svc.TokenManager().Parse(access, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != user.ID {
		t.Errorf("subject = %q, want %q", claims.Subject, user.ID)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "sam", "sam@league.io", "wings"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, pair, err := svc.Login(ctx, "sam", "wings")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestRefreshRejectsExpiredRefreshToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "bruce", "bruce@league.io", "gamma")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	claims := &auth.Claims{
		Role:  domain.RoleAvenger,
		Class: domain.TokenClassRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(authTestSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, _, err := svc.Refresh(ctx, expired); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestRefreshUnknownSubject(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "vision", "vision@league.io", "stone")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, pair, err := svc.Login(ctx, "vision", "stone")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	repo.delete(user.ID)

	if _, _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrUnknownSubject) {
		t.Errorf("err = %v, want ErrUnknownSubject", err)
	}
}

func TestRefreshPicksUpRoleChange(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "carol", "carol@league.io", "binary")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, pair, err := svc.Login(ctx, "carol", "binary")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	repo.setRole(user.ID, domain.RoleAdmin)

	access, _, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	claims, err := svc.TokenManager().Parse(access, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want ADMIN after promotion", claims.Role)
	}
}
