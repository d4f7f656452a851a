package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/league-service/internal/api/dto"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/service"
	apperrors "github.com/spec-kit/league-service/pkg/util"
)

// FeedbackHandler exposes feedback endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit handles POST /api/feedback.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.FeedbackSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fiber.NewError(http.StatusBadRequest, "feedback text required")
	}

	fb, err := h.feedback.Submit(c.Context(), principal.UserID, req.Text)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FeedbackResponse{
		ID:          fb.ID,
		UserID:      fb.UserID,
		Text:        fb.Text,
		SubmittedAt: fb.SubmittedAt,
		Read:        fb.Read,
	}})
}

// List handles GET /api/admin/feedback.
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	items, err := h.feedback.ListAll(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.FeedbackResponse, 0, len(items))
	for _, fb := range items {
		out = append(out, dto.FeedbackResponse{
			ID:          fb.ID,
			UserID:      fb.UserID,
			Text:        fb.Text,
			SubmittedAt: fb.SubmittedAt,
			Read:        fb.Read,
		})
	}
	return c.JSON(fiber.Map{"data": out})
}

// MarkRead handles PUT /api/admin/feedback/:id/read.
func (h *FeedbackHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.feedback.MarkRead(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("feedback", nil)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "feedback marked read"}})
}
