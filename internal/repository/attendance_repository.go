package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/league-service/internal/domain"
)

// AttendanceRecordView joins a record with display fields for admin listings.
type AttendanceRecordView struct {
	Record      domain.AttendanceRecord
	SessionCode string
	Username    string
}

// AttendanceSessionRepository manages attendance session persistence. Code
// uniqueness among active sessions is backed by a partial unique index, so a
// concurrent Create with a colliding code fails with ErrDuplicate.
type AttendanceSessionRepository interface {
	Create(ctx context.Context, session *domain.AttendanceSession) error
	GetActiveByCode(ctx context.Context, code string) (*domain.AttendanceSession, error)
	Deactivate(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// AttendanceRecordRepository manages attendance record persistence. The
// (session_id, user_id) composite primary key guarantees at-most-once
// marking; the second concurrent insert fails with ErrDuplicate.
type AttendanceRecordRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) error
	Exists(ctx context.Context, sessionID, userID string) (bool, error)
	ListAll(ctx context.Context) ([]AttendanceRecordView, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type attendanceSessionRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceSessionRepository returns a Postgres-backed implementation.
func NewAttendanceSessionRepository(pool *pgxpool.Pool) AttendanceSessionRepository {
	return &attendanceSessionRepository{pool: pool}
}

func (r *attendanceSessionRepository) Create(ctx context.Context, session *domain.AttendanceSession) error {
	const query = `
        INSERT INTO attendance_sessions (admin_id, code, start_time, end_time, active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		session.AdminID,
		session.Code,
		session.StartTime,
		session.EndTime,
		session.Active,
	).Scan(&session.ID, &session.CreatedAt)
	return mapInsertError(err)
}

func (r *attendanceSessionRepository) GetActiveByCode(ctx context.Context, code string) (*domain.AttendanceSession, error) {
	const query = `
        SELECT id, admin_id, code, start_time, end_time, active, created_at
        FROM attendance_sessions WHERE code=$1 AND active=TRUE`

	var session domain.AttendanceSession
	if err := r.pool.QueryRow(ctx, query, code).Scan(
		&session.ID,
		&session.AdminID,
		&session.Code,
		&session.StartTime,
		&session.EndTime,
		&session.Active,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *attendanceSessionRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
        UPDATE attendance_sessions SET active=FALSE
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

func (r *attendanceSessionRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM attendance_sessions`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type attendanceRecordRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRecordRepository returns a Postgres-backed implementation.
func NewAttendanceRecordRepository(pool *pgxpool.Pool) AttendanceRecordRepository {
	return &attendanceRecordRepository{pool: pool}
}

func (r *attendanceRecordRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	const query = `
        INSERT INTO attendance_records (session_id, user_id, marked_at)
        VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, record.SessionID, record.UserID, record.MarkedAt)
	return mapInsertError(err)
}

func (r *attendanceRecordRepository) Exists(ctx context.Context, sessionID, userID string) (bool, error) {
	const query = `
        SELECT EXISTS (SELECT 1 FROM attendance_records WHERE session_id=$1 AND user_id=$2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, sessionID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *attendanceRecordRepository) ListAll(ctx context.Context) ([]AttendanceRecordView, error) {
	const query = `
        SELECT ar.session_id, ar.user_id, ar.marked_at, s.code, u.username
        FROM attendance_records ar
        JOIN attendance_sessions s ON s.id = ar.session_id
        JOIN users u ON u.id = ar.user_id
        ORDER BY ar.marked_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []AttendanceRecordView
	for rows.Next() {
		var view AttendanceRecordView
		if err := rows.Scan(
			&view.Record.SessionID,
			&view.Record.UserID,
			&view.Record.MarkedAt,
			&view.SessionCode,
			&view.Username,
		); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (r *attendanceRecordRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM attendance_records WHERE user_id=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
