package dto

import "time"

// AnnouncementCreateRequest payload for new announcements.
type AnnouncementCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AnnouncementResponse describes an announcement.
type AnnouncementResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
