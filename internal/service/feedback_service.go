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

// FeedbackService records avenger feedback for admin review.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	dispatcher events.Dispatcher
}

// NewFeedbackService builds the service.
func NewFeedbackService(feedback repository.FeedbackRepository, dispatcher events.Dispatcher) *FeedbackService {
	return &FeedbackService{feedback: feedback, dispatcher: dispatcher}
}

// Submit stores a new feedback note.
func (s *FeedbackService) Submit(ctx context.Context, userID, text string) (*domain.Feedback, error) {
	if text == "" {
		return nil, errors.New("feedback text required")
	}
	fb := &domain.Feedback{UserID: userID, Text: text}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventFeedbackSubmitted,
			Actor:     events.Actor{UserID: userID, Role: domain.RoleAvenger},
			Timestamp: time.Now(),
			Payload:   events.FeedbackSubmittedPayload{FeedbackID: fb.ID},
		})
	}
	return fb, nil
}

// ListAll returns all feedback, newest first.
func (s *FeedbackService) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedback.ListAll(ctx)
}

// MarkRead flags feedback as reviewed by an admin.
func (s *FeedbackService) MarkRead(ctx context.Context, id string) error {
	return s.feedback.MarkRead(ctx, id)
}
