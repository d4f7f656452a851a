package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/league-service/internal/domain"
)

// TransactionRepository records completed payments.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	ListAll(ctx context.Context) ([]domain.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	SumByTypeBetween(ctx context.Context, txType domain.TransactionType, from, to time.Time) (float64, error)
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (sender_id, receiver_id, amount, type, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		tx.SenderID,
		tx.ReceiverID,
		tx.Amount,
		tx.Type,
		tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	const query = `
        SELECT id, sender_id, receiver_id, amount, type, description, created_at
        FROM transactions ORDER BY created_at DESC`

	return r.list(ctx, query)
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	const query = `
        SELECT id, sender_id, receiver_id, amount, type, description, created_at
        FROM transactions WHERE sender_id=$1 OR receiver_id=$1 ORDER BY created_at DESC`

	return r.list(ctx, query, userID)
}

func (r *transactionRepository) SumByTypeBetween(ctx context.Context, txType domain.TransactionType, from, to time.Time) (float64, error) {
	const query = `
        SELECT COALESCE(SUM(amount), 0) FROM transactions
        WHERE type=$1 AND created_at BETWEEN $2 AND $3`

	var total float64
	if err := r.pool.QueryRow(ctx, query, txType, from, to).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.SenderID,
			&tx.ReceiverID,
			&tx.Amount,
			&tx.Type,
			&tx.Description,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
