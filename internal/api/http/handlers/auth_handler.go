package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/league-service/internal/api/dto"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/service"
	apperrors "github.com/spec-kit/league-service/pkg/util"
)

const refreshCookiePath = "/api/auth"

// AuthHandler exposes registration, login, logout and refresh endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username, email, password required")
	}

	user, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return apperrors.NewConflict("username already taken", nil)
		}
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
			Balance:  user.Balance,
			Alive:    user.Alive,
		},
	})
}

// Login handles POST /api/auth/login. Both tokens are delivered as http-only
// cookies; the refresh cookie is scoped to the auth endpoints only.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	user, pair, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			return apperrors.NewBadCredentials()
		}
		return err
	}

	tm := h.auth.TokenManager()
	c.Cookie(&fiber.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   int(tm.AccessTTL().Seconds()),
	})
	c.Cookie(&fiber.Cookie{
		Name:     auth.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     refreshCookiePath,
		HTTPOnly: true,
		MaxAge:   int(tm.RefreshTTL().Seconds()),
	})

	return c.JSON(fiber.Map{
		"data": dto.LoginResponse{Username: user.Username, Role: string(user.Role)},
	})
}

// Refresh handles POST /api/auth/refresh using the refresh cookie.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(auth.RefreshTokenCookie)
	if refreshToken == "" {
		return apperrors.NewUnauthorized("refresh token not found")
	}

	accessToken, expiresAt, err := h.auth.Refresh(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenInvalid):
			return apperrors.NewTokenInvalid()
		case errors.Is(err, service.ErrUnknownSubject):
			return apperrors.NewUnknownSubject()
		}
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "access token refreshed"}})
}

// Logout handles POST /api/auth/logout by expiring both cookies. The server
// holds no session state to revoke.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	expireCookie(c, auth.AccessTokenCookie, "/")
	expireCookie(c, auth.RefreshTokenCookie, refreshCookiePath)
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "logged out"}})
}

func expireCookie(c *fiber.Ctx, name, path string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		HTTPOnly: true,
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
	})
}
