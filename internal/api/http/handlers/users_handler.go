package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/league-service/internal/api/dto"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/service"
	apperrors "github.com/spec-kit/league-service/pkg/util"
)

// UsersHandler exposes member detail and admin management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Details handles GET /api/user/details for the authenticated member.
func (h *UsersHandler) Details(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.users.Get(c.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnknownSubject()
		}
		return err
	}

	return c.JSON(fiber.Map{"data": dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		Balance:  user.Balance,
		Alive:    user.Alive,
	}})
}

// ListAvengers handles GET /api/admin/avengers.
func (h *UsersHandler) ListAvengers(c *fiber.Ctx) error {
	avengers, err := h.users.ListAvengers(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(avengers))
	for _, user := range avengers {
		out = append(out, dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
			Balance:  user.Balance,
			Alive:    user.Alive,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// UpdateStatus handles PUT /api/users/:id/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.users.SetStatus(c.Context(), c.Params("id"), req.Alive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "status updated"}})
}

// DashboardStats handles GET /api/admin/dashboard-stats.
func (h *UsersHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.users.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardStatsResponse{
		TotalAvengers:     stats.TotalAvengers,
		ActiveMissions:    stats.ActiveMissions,
		UnreadFeedback:    stats.UnreadFeedback,
		PaymentsThisMonth: stats.PaymentsThisMonth,
	}})
}
