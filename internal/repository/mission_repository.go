package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/league-service/internal/domain"
)

// MissionRepository encapsulates mission persistence.
type MissionRepository interface {
	Create(ctx context.Context, mission *domain.Mission) error
	UpdateStatus(ctx context.Context, id string, status domain.MissionStatus) error
	GetByID(ctx context.Context, id string) (*domain.Mission, error)
	ListAll(ctx context.Context) ([]domain.Mission, error)
	ListByParticipant(ctx context.Context, userID string) ([]domain.Mission, error)
	CountByStatus(ctx context.Context, status domain.MissionStatus) (int64, error)
}

type missionRepository struct {
	pool *pgxpool.Pool
}

// NewMissionRepository instantiates repository.
func NewMissionRepository(pool *pgxpool.Pool) MissionRepository {
	return &missionRepository{pool: pool}
}

func (r *missionRepository) Create(ctx context.Context, mission *domain.Mission) error {
	const insertMission = `
        INSERT INTO missions (name, description, status, assigned_by_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	const insertParticipant = `
        INSERT INTO mission_participants (mission_id, user_id)
        VALUES ($1, $2)`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, insertMission,
		mission.Name,
		mission.Description,
		mission.Status,
		mission.AssignedByID,
	).Scan(&mission.ID, &mission.CreatedAt, &mission.UpdatedAt); err != nil {
		return err
	}

	for _, userID := range mission.ParticipantIDs {
		if _, err := tx.Exec(ctx, insertParticipant, mission.ID, userID); err != nil {
			return mapInsertError(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *missionRepository) UpdateStatus(ctx context.Context, id string, status domain.MissionStatus) error {
	const query = `
        UPDATE missions SET status=$1, updated_at=NOW()
        WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *missionRepository) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	const query = `
        SELECT id, name, description, status, assigned_by_id, created_at, updated_at
        FROM missions WHERE id=$1`

	var mission domain.Mission
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&mission.ID,
		&mission.Name,
		&mission.Description,
		&mission.Status,
		&mission.AssignedByID,
		&mission.CreatedAt,
		&mission.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := r.loadParticipants(ctx, &mission); err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepository) ListAll(ctx context.Context) ([]domain.Mission, error) {
	const query = `
        SELECT id, name, description, status, assigned_by_id, created_at, updated_at
        FROM missions ORDER BY created_at DESC`

	return r.list(ctx, query)
}

func (r *missionRepository) ListByParticipant(ctx context.Context, userID string) ([]domain.Mission, error) {
	const query = `
        SELECT m.id, m.name, m.description, m.status, m.assigned_by_id, m.created_at, m.updated_at
        FROM missions m
        JOIN mission_participants mp ON mp.mission_id = m.id
        WHERE mp.user_id=$1 ORDER BY m.created_at DESC`

	return r.list(ctx, query, userID)
}

func (r *missionRepository) CountByStatus(ctx context.Context, status domain.MissionStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM missions WHERE status=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *missionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Mission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []domain.Mission
	for rows.Next() {
		var mission domain.Mission
		if err := rows.Scan(
			&mission.ID,
			&mission.Name,
			&mission.Description,
			&mission.Status,
			&mission.AssignedByID,
			&mission.CreatedAt,
			&mission.UpdatedAt,
		); err != nil {
			return nil, err
		}
		missions = append(missions, mission)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range missions {
		if err := r.loadParticipants(ctx, &missions[i]); err != nil {
			return nil, err
		}
	}
	return missions, nil
}

func (r *missionRepository) loadParticipants(ctx context.Context, mission *domain.Mission) error {
	const query = `
        SELECT user_id FROM mission_participants WHERE mission_id=$1`

	rows, err := r.pool.Query(ctx, query, mission.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	mission.ParticipantIDs = nil
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		mission.ParticipantIDs = append(mission.ParticipantIDs, userID)
	}
	return rows.Err()
}
