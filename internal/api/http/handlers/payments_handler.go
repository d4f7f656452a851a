package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/league-service/internal/api/dto"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/service"
	apperrors "github.com/spec-kit/league-service/pkg/util"
)

// PaymentsHandler exposes payment endpoints.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(payments *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

// Send handles POST /api/admin/payments/send and POST /api/transactions/send.
func (h *PaymentsHandler) Send(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ReceiverUsername == "" || req.Amount <= 0 {
		return fiber.NewError(http.StatusBadRequest, "receiver and positive amount required")
	}

	txType := domain.TransactionType(req.Type)
	switch txType {
	case domain.TransactionTypeSalary, domain.TransactionTypeBonus, domain.TransactionTypeTransfer:
	default:
		return fiber.NewError(http.StatusBadRequest, "unknown transaction type")
	}

	tx, err := h.payments.Send(c.Context(), principal.UserID, req.ReceiverUsername, req.Amount, txType, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReceiverNotFound):
			return apperrors.NewNotFound("receiver", nil)
		case errors.Is(err, service.ErrInsufficientFunds):
			return apperrors.NewValidationError("insufficient funds", nil)
		}
		return err
	}

	return c.JSON(fiber.Map{"data": toTransactionResponse(tx)})
}

// History handles GET /api/admin/payments/history.
func (h *PaymentsHandler) History(c *fiber.Ctx) error {
	txs, err := h.payments.History(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toTransactionResponses(txs)})
}

// HistoryMine handles GET /api/transactions/history for the caller.
func (h *PaymentsHandler) HistoryMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	txs, err := h.payments.HistoryFor(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": toTransactionResponses(txs)})
}

func toTransactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID,
		SenderID:    tx.SenderID,
		ReceiverID:  tx.ReceiverID,
		Amount:      tx.Amount,
		Type:        string(tx.Type),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

func toTransactionResponses(txs []domain.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, toTransactionResponse(&txs[i]))
	}
	return out
}
