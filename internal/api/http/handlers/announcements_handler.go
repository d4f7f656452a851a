package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/league-service/internal/api/dto"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/service"
	apperrors "github.com/spec-kit/league-service/pkg/util"
)

// AnnouncementsHandler exposes announcement endpoints.
type AnnouncementsHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcements *service.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{announcements: announcements}
}

// Create handles POST /api/admin/announcements.
func (h *AnnouncementsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AnnouncementCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" || req.Content == "" {
		return fiber.NewError(http.StatusBadRequest, "title and content required")
	}

	announcement, err := h.announcements.Publish(c.Context(), principal.UserID, req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AnnouncementResponse{
		ID:        announcement.ID,
		AuthorID:  announcement.AuthorID,
		Title:     announcement.Title,
		Content:   announcement.Content,
		CreatedAt: announcement.CreatedAt,
	}})
}

// List handles GET /api/announcements.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	items, err := h.announcements.ListAll(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.AnnouncementResponse, 0, len(items))
	for _, a := range items {
		out = append(out, dto.AnnouncementResponse{
			ID:        a.ID,
			AuthorID:  a.AuthorID,
			Title:     a.Title,
			Content:   a.Content,
			CreatedAt: a.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}
