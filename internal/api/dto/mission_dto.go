package dto

import "time"

// MissionCreateRequest payload for new missions.
type MissionCreateRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Participants []string `json:"participants"`
}

// MissionStatusRequest transitions a mission.
type MissionStatusRequest struct {
	Status string `json:"status"`
}

// MissionResponse describes a mission.
type MissionResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	AssignedByID string    `json:"assigned_by_id"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
