package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/events"
	"github.com/spec-kit/league-service/internal/repository"
)

// PaymentService moves balance between members and keeps the transaction log.
type PaymentService struct {
	users        repository.UserRepository
	transactions repository.TransactionRepository
	dispatcher   events.Dispatcher
}

// NewPaymentService builds the service.
func NewPaymentService(users repository.UserRepository, transactions repository.TransactionRepository, dispatcher events.Dispatcher) *PaymentService {
	return &PaymentService{users: users, transactions: transactions, dispatcher: dispatcher}
}

// Send transfers amount from sender to the named receiver. SALARY and BONUS
// payments are funded by the organization and only credit the receiver;
// TRANSFER debits the sender and requires sufficient balance.
func (s *PaymentService) Send(ctx context.Context, senderID, receiverUsername string, amount float64, txType domain.TransactionType, description string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.users.GetByUsername(ctx, receiverUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	if txType == domain.TransactionTypeTransfer {
		if sender.Balance < amount {
			return nil, ErrInsufficientFunds
		}
		if err := s.users.AdjustBalance(ctx, sender.ID, -amount); err != nil {
			return nil, err
		}
	}
	if err := s.users.AdjustBalance(ctx, receiver.ID, amount); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		SenderID:    sender.ID,
		ReceiverID:  receiver.ID,
		Amount:      amount,
		Type:        txType,
		Description: description,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPaymentSent,
			Actor:     events.Actor{UserID: sender.ID, Role: sender.Role},
			Timestamp: time.Now(),
			Payload: events.PaymentSentPayload{
				TransactionID: tx.ID,
				ReceiverID:    receiver.ID,
				Amount:        amount,
				Type:          txType,
			},
		})
	}
	return tx, nil
}

// HistoryFor lists transactions the member sent or received.
func (s *PaymentService) HistoryFor(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.transactions.ListByUser(ctx, userID)
}

// History lists all transactions, newest first.
func (s *PaymentService) History(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions.ListAll(ctx)
}
