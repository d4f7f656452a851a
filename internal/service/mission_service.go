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

// MissionService manages mission lifecycle and assignment.
type MissionService struct {
	missions   repository.MissionRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewMissionService builds the service.
func NewMissionService(missions repository.MissionRepository, users repository.UserRepository, dispatcher events.Dispatcher) *MissionService {
	return &MissionService{missions: missions, users: users, dispatcher: dispatcher}
}

// Create registers a new ongoing mission assigned by the admin to the named
// participants.
func (s *MissionService) Create(ctx context.Context, adminID, name, description string, participantUsernames []string) (*domain.Mission, error) {
	if name == "" {
		return nil, errors.New("mission name required")
	}

	participantIDs := make([]string, 0, len(participantUsernames))
	for _, username := range participantUsernames {
		user, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrUnknownParticipant
			}
			return nil, err
		}
		participantIDs = append(participantIDs, user.ID)
	}

	mission := &domain.Mission{
		Name:           name,
		Description:    description,
		Status:         domain.MissionStatusOngoing,
		AssignedByID:   adminID,
		ParticipantIDs: participantIDs,
	}
	if err := s.missions.Create(ctx, mission); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventMissionCreated,
			Actor:     events.Actor{UserID: adminID, Role: domain.RoleAdmin},
			Timestamp: time.Now(),
			Payload: events.MissionCreatedPayload{
				MissionID:    mission.ID,
				Name:         mission.Name,
				Participants: mission.ParticipantIDs,
			},
		})
	}
	return mission, nil
}

// UpdateStatus transitions a mission to the given state.
func (s *MissionService) UpdateStatus(ctx context.Context, id string, status domain.MissionStatus) error {
	switch status {
	case domain.MissionStatusOngoing, domain.MissionStatusCompleted, domain.MissionStatusFailed:
	default:
		return errors.New("unknown mission status")
	}
	return s.missions.UpdateStatus(ctx, id, status)
}

// ListAll returns every mission, newest first.
func (s *MissionService) ListAll(ctx context.Context) ([]domain.Mission, error) {
	return s.missions.ListAll(ctx)
}

// ListFor returns missions the member participates in.
func (s *MissionService) ListFor(ctx context.Context, userID string) ([]domain.Mission, error) {
	return s.missions.ListByParticipant(ctx, userID)
}
