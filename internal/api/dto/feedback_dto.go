package dto

import "time"

// FeedbackSubmitRequest payload for new feedback.
type FeedbackSubmitRequest struct {
	Text string `json:"text"`
}

// FeedbackResponse describes submitted feedback.
type FeedbackResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
	Read        bool      `json:"read"`
}
