package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/league-service/internal/api/dto"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/service"
	apperrors "github.com/spec-kit/league-service/pkg/util"
)

// AttendanceHandler exposes attendance session and marking endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Start handles POST /api/admin/attendance/start.
func (h *AttendanceHandler) Start(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	session, err := h.attendance.Start(c.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, service.ErrCodeSpaceExhausted) {
			return apperrors.NewConflict("no attendance code available, try again shortly", nil)
		}
		return err
	}

	return c.JSON(fiber.Map{"data": dto.AttendanceSessionResponse{
		SessionID: session.ID,
		Code:      session.Code,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
	}})
}

// Mark handles POST /api/avenger/attendance/mark.
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Code) == "" {
		return fiber.NewError(http.StatusBadRequest, "attendance code cannot be empty")
	}

	if err := h.attendance.Mark(c.Context(), principal.UserID, strings.TrimSpace(req.Code)); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrExpiredCode):
			return apperrors.NewInvalidOrExpiredCode()
		case errors.Is(err, service.ErrAlreadyMarked):
			return apperrors.NewAlreadyMarked()
		}
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "attendance marked"}})
}

// Records handles GET /api/admin/attendance/records.
func (h *AttendanceHandler) Records(c *fiber.Ctx) error {
	views, err := h.attendance.Records(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.AttendanceRecordResponse, 0, len(views))
	for _, view := range views {
		out = append(out, dto.AttendanceRecordResponse{
			SessionID:   view.Record.SessionID,
			SessionCode: view.SessionCode,
			Username:    view.Username,
			MarkedAt:    view.Record.MarkedAt,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// Stats handles GET /api/attendance/stats for the authenticated member.
func (h *AttendanceHandler) Stats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	stats, err := h.attendance.StatsFor(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AttendanceStatsResponse{
		Attended:      stats.Attended,
		TotalSessions: stats.TotalSessions,
	}})
}
