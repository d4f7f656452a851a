package domain

import "time"

// Feedback is a free-form note submitted by an avenger for admin review.
type Feedback struct {
	ID          string
	UserID      string
	Text        string
	SubmittedAt time.Time
	Read        bool
}
