package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/league-service/internal/domain"
)

// FeedbackRepository manages feedback persistence.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ListAll(ctx context.Context) ([]domain.Feedback, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int64, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (user_id, feedback_text, is_read)
        VALUES ($1, $2, FALSE)
        RETURNING id, submitted_at`

	return r.pool.QueryRow(ctx, query,
		feedback.UserID,
		feedback.Text,
	).Scan(&feedback.ID, &feedback.SubmittedAt)
}

func (r *feedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	const query = `
        SELECT id, user_id, feedback_text, submitted_at, is_read
        FROM feedback ORDER BY submitted_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Text, &fb.SubmittedAt, &fb.Read); err != nil {
			return nil, err
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}

func (r *feedbackRepository) MarkRead(ctx context.Context, id string) error {
	const query = `
        UPDATE feedback SET is_read=TRUE
        WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *feedbackRepository) CountUnread(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM feedback WHERE is_read=FALSE`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
