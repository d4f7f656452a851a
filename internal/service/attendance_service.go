package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/league-service/internal/config"
	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/events"
	"github.com/spec-kit/league-service/internal/repository"
)

const attendanceCodeSpace = 1000000 // six-digit zero-padded codes

// AttendanceStats summarizes a member's attendance history.
type AttendanceStats struct {
	Attended      int64
	TotalSessions int64
}

// AttendanceService generates collision-free, time-bounded attendance codes
// and records consumption with at-most-once-per-member-per-session semantics.
//
// Uniqueness among active codes is enforced in layers: an optional Redis
// reservation narrows the race window between concurrent starts, and the
// partial unique index on active sessions is the authoritative check. The
// (session_id, user_id) primary key on records makes concurrent marks safe
// without in-process locking.
type AttendanceService struct {
	sessions    repository.AttendanceSessionRepository
	records     repository.AttendanceRecordRepository
	codes       repository.CodeReserver
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	duration    time.Duration
	maxAttempts int
	now         func() time.Time
}

// NewAttendanceService builds the service. The code reserver may be nil when
// Redis is not configured; the database constraint still holds alone.
func NewAttendanceService(
	cfg config.AttendanceConfig,
	sessions repository.AttendanceSessionRepository,
	records repository.AttendanceRecordRepository,
	codes repository.CodeReserver,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *AttendanceService {
	maxAttempts := cfg.MaxCodeAttempts
	if maxAttempts <= 0 {
		maxAttempts = 25
	}
	return &AttendanceService{
		sessions:    sessions,
		records:     records,
		codes:       codes,
		dispatcher:  dispatcher,
		logger:      logger,
		duration:    cfg.SessionDuration(),
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Start opens a new attendance session for the admin and returns it with a
// freshly drawn code. Draws are retried up to the configured bound; if every
// attempt collides with a currently active code the call fails with
// ErrCodeSpaceExhausted rather than looping forever.
func (s *AttendanceService) Start(ctx context.Context, adminID string) (*domain.AttendanceSession, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		code, err := generateAttendanceCode()
		if err != nil {
			return nil, err
		}

		if s.codes != nil {
			reserved, err := s.codes.Reserve(ctx, code, s.duration)
			if err != nil {
				s.logger.Warn("attendance code reservation unavailable", zap.Error(err))
			} else if !reserved {
				continue
			}
		}

		startTime := s.now()
		session := &domain.AttendanceSession{
			AdminID:   adminID,
			Code:      code,
			StartTime: startTime,
			EndTime:   startTime.Add(s.duration),
			Active:    true,
		}

		err = s.sessions.Create(ctx, session)
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race against another start holding the same code.
			s.releaseCode(ctx, code)
			continue
		}
		if err != nil {
			s.releaseCode(ctx, code)
			return nil, err
		}

		s.logger.Info("attendance session started",
			zap.String("session_id", session.ID),
			zap.String("admin_id", adminID),
			zap.Time("end_time", session.EndTime))
		s.publish(ctx, events.EventAttendanceSessionStarted, adminID, domain.RoleAdmin,
			events.AttendanceSessionStartedPayload{SessionID: session.ID, EndTime: session.EndTime})
		return session, nil
	}
	return nil, ErrCodeSpaceExhausted
}

// Mark registers the member's presence for the session identified by code.
// Expiry is applied lazily: a session found past its end time is persisted as
// inactive so future lookups short-circuit, then the mark is rejected.
func (s *AttendanceService) Mark(ctx context.Context, userID, code string) error {
	session, err := s.sessions.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}

	if s.now().After(session.EndTime) {
		if err := s.sessions.Deactivate(ctx, session.ID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("failed to deactivate expired session",
				zap.String("session_id", session.ID), zap.Error(err))
		}
		return ErrInvalidOrExpiredCode
	}

	exists, err := s.records.Exists(ctx, session.ID, userID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyMarked
	}

	record := &domain.AttendanceRecord{
		SessionID: session.ID,
		UserID:    userID,
		MarkedAt:  s.now(),
	}
	if err := s.records.Create(ctx, record); err != nil {
		// Two concurrent marks can both pass the Exists check; the composite
		// key rejects the loser and we report it as already marked.
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyMarked
		}
		return err
	}

	s.publish(ctx, events.EventAttendanceMarked, userID, domain.RoleAvenger,
		events.AttendanceMarkedPayload{SessionID: session.ID})
	return nil
}

// Records returns all attendance records with session and member context.
func (s *AttendanceService) Records(ctx context.Context) ([]repository.AttendanceRecordView, error) {
	return s.records.ListAll(ctx)
}

// StatsFor reports how many sessions the member attended out of the total.
func (s *AttendanceService) StatsFor(ctx context.Context, userID string) (*AttendanceStats, error) {
	attended, err := s.records.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &AttendanceStats{Attended: attended, TotalSessions: total}, nil
}

func (s *AttendanceService) releaseCode(ctx context.Context, code string) {
	if s.codes == nil {
		return
	}
	if err := s.codes.Release(ctx, code); err != nil {
		s.logger.Warn("failed to release attendance code", zap.String("code", code), zap.Error(err))
	}
}

func (s *AttendanceService) publish(ctx context.Context, eventType events.EventType, actorID string, role domain.Role, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{UserID: actorID, Role: role},
		Timestamp: s.now(),
		Payload:   payload,
	})
}

func generateAttendanceCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(attendanceCodeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
