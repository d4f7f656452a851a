package events

import (
	"time"

	"github.com/spec-kit/league-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered           EventType = "user_registered"
	EventPaymentSent              EventType = "payment_sent"
	EventMissionCreated           EventType = "mission_created"
	EventAttendanceSessionStarted EventType = "attendance_session_started"
	EventAttendanceMarked         EventType = "attendance_marked"
	EventFeedbackSubmitted        EventType = "feedback_submitted"
	EventAnnouncementPublished    EventType = "announcement_published"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// PaymentSentPayload payload.
type PaymentSentPayload struct {
	TransactionID string                 `json:"transaction_id"`
	ReceiverID    string                 `json:"receiver_id"`
	Amount        float64                `json:"amount"`
	Type          domain.TransactionType `json:"type"`
}

// MissionCreatedPayload payload.
type MissionCreatedPayload struct {
	MissionID    string   `json:"mission_id"`
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

// AttendanceSessionStartedPayload payload.
type AttendanceSessionStartedPayload struct {
	SessionID string    `json:"session_id"`
	EndTime   time.Time `json:"end_time"`
}

// AttendanceMarkedPayload payload.
type AttendanceMarkedPayload struct {
	SessionID string `json:"session_id"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	FeedbackID string `json:"feedback_id"`
}

// AnnouncementPublishedPayload payload.
type AnnouncementPublishedPayload struct {
	AnnouncementID string `json:"announcement_id"`
	Title          string `json:"title"`
}
