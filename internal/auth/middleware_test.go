package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/league-service/internal/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) error  { return nil }
func (r *stubUserRepo) Update(ctx context.Context, user *domain.User) error  { return nil }
func (r *stubUserRepo) UpdateStatus(ctx context.Context, id string, alive bool) error {
	return nil
}
func (r *stubUserRepo) AdjustBalance(ctx context.Context, id string, delta float64) error {
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	return 0, nil
}

func newTestApp(t *testing.T, repo *stubUserRepo) (*fiber.App, *TokenManager) {
	t.Helper()

	tm := newTestManager(t)
	mw := NewAuthMiddleware(tm, repo, zap.NewNop())

	app := fiber.New()
	app.Use(mw.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.JSON(fiber.Map{"authenticated": false})
		}
		return c.JSON(fiber.Map{
			"authenticated": true,
			"user_id":       principal.UserID,
			"role":          string(principal.Role),
		})
	})
	app.Get("/admin-only", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/members", RequireRole(domain.RoleAdmin, domain.RoleAvenger), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app, tm
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestMiddlewareAcceptsCookieToken(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "steve", Role: domain.RoleAdmin},
	}}
	app, tm := newTestApp(t, repo)

	token, _, err := tm.Generate("u1", domain.RoleAdmin, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "natasha", Role: domain.RoleAvenger},
	}}
	app, tm := newTestApp(t, repo)

	token, _, err := tm.Generate("u1", domain.RoleAvenger, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestMiddlewareCookieWinsOverHeader(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"cookie-user": {ID: "cookie-user", Username: "steve", Role: domain.RoleAdmin},
		"header-user": {ID: "header-user", Username: "clint", Role: domain.RoleAvenger},
	}}
	app, tm := newTestApp(t, repo)

	cookieToken, _, err := tm.Generate("cookie-user", domain.RoleAdmin, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	headerToken, _, err := tm.Generate("header-user", domain.RoleAvenger, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: cookieToken})
	req.Header.Set("Authorization", "Bearer "+headerToken)
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 for cookie principal", resp.StatusCode)
	}
}

func TestMiddlewareLeavesRequestUnauthenticated(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "steve", Role: domain.RoleAdmin},
	}}
	app, tm := newTestApp(t, repo)

	refreshToken, _, err := tm.Generate("u1", domain.RoleAdmin, domain.TokenClassRefresh)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	deletedUserToken, _, err := tm.Generate("ghost", domain.RoleAdmin, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not-a-jwt"},
		{"refresh token as access", refreshToken},
		{"subject deleted", deletedUserToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tc.token})
			}
			resp := doRequest(t, app, req)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200 on open route", resp.StatusCode)
			}

			req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tc.token})
			}
			resp = doRequest(t, app, req)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("guarded status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "peter", Role: domain.RoleAvenger},
	}}
	app, tm := newTestApp(t, repo)

	token, _, err := tm.Generate("u1", domain.RoleAvenger, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestMiddlewareUsesLiveRoleNotTokenRole(t *testing.T) {
	// Token claims ADMIN but the store says the member is now an AVENGER.
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Username: "wanda", Role: domain.RoleAvenger},
	}}
	app, tm := newTestApp(t, repo)

	token, _, err := tm.Generate("u1", domain.RoleAdmin, domain.TokenClassAccess)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403 for demoted member", resp.StatusCode)
	}
}
