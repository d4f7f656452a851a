package domain

import "time"

// Announcement is an admin-authored broadcast visible to all members.
type Announcement struct {
	ID        string
	AuthorID  string
	Title     string
	Content   string
	CreatedAt time.Time
}
