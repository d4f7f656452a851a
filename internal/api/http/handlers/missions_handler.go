package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/league-service/internal/api/dto"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/service"
	apperrors "github.com/spec-kit/league-service/pkg/util"
)

// MissionsHandler exposes mission management endpoints.
type MissionsHandler struct {
	missions *service.MissionService
}

// NewMissionsHandler constructs handler.
func NewMissionsHandler(missions *service.MissionService) *MissionsHandler {
	return &MissionsHandler{missions: missions}
}

// Create handles POST /api/admin/missions.
func (h *MissionsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MissionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "mission name required")
	}

	mission, err := h.missions.Create(c.Context(), principal.UserID, req.Name, req.Description, req.Participants)
	if err != nil {
		if errors.Is(err, service.ErrUnknownParticipant) {
			return apperrors.NewValidationError("unknown mission participant", nil)
		}
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": toMissionResponse(mission)})
}

// List handles GET /api/admin/missions.
func (h *MissionsHandler) List(c *fiber.Ctx) error {
	missions, err := h.missions.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toMissionResponses(missions)})
}

// ListMine handles GET /api/missions/my for avengers.
func (h *MissionsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	missions, err := h.missions.ListFor(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toMissionResponses(missions)})
}

// UpdateStatus handles PUT /api/admin/missions/:id/status.
func (h *MissionsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.MissionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	err := h.missions.UpdateStatus(c.Context(), c.Params("id"), domain.MissionStatus(req.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("mission", nil)
		}
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "mission updated"}})
}

func toMissionResponse(mission *domain.Mission) dto.MissionResponse {
	return dto.MissionResponse{
		ID:           mission.ID,
		Name:         mission.Name,
		Description:  mission.Description,
		Status:       string(mission.Status),
		AssignedByID: mission.AssignedByID,
		Participants: mission.ParticipantIDs,
		CreatedAt:    mission.CreatedAt,
		UpdatedAt:    mission.UpdatedAt,
	}
}

func toMissionResponses(missions []domain.Mission) []dto.MissionResponse {
	out := make([]dto.MissionResponse, 0, len(missions))
	for i := range missions {
		out = append(out, toMissionResponse(&missions[i]))
	}
	return out
}
