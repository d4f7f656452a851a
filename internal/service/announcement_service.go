package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/league-service/internal/domain"
	"github.com/spec-kit/league-service/internal/events"
	"github.com/spec-kit/league-service/internal/repository"
)

// AnnouncementService publishes admin broadcasts.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	dispatcher    events.Dispatcher
}

// NewAnnouncementService builds the service.
func NewAnnouncementService(announcements repository.AnnouncementRepository, dispatcher events.Dispatcher) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, dispatcher: dispatcher}
}

// Publish stores a new announcement.
func (s *AnnouncementService) Publish(ctx context.Context, authorID, title, content string) (*domain.Announcement, error) {
	if title == "" || content == "" {
		return nil, errors.New("title and content required")
	}
	announcement := &domain.Announcement{AuthorID: authorID, Title: title, Content: content}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAnnouncementPublished,
			Actor:     events.Actor{UserID: authorID, Role: domain.RoleAdmin},
			Timestamp: time.Now(),
			Payload: events.AnnouncementPublishedPayload{
				AnnouncementID: announcement.ID,
				Title:          announcement.Title,
			},
		})
	}
	return announcement, nil
}

// ListAll returns all announcements, newest first.
func (s *AnnouncementService) ListAll(ctx context.Context) ([]domain.Announcement, error) {
	return s.announcements.ListAll(ctx)
}
