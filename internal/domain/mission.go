package domain

import "time"

// MissionStatus enumerates mission lifecycle states.
type MissionStatus string

const (
	MissionStatusOngoing   MissionStatus = "ONGOING"
	MissionStatusCompleted MissionStatus = "COMPLETED"
	MissionStatusFailed    MissionStatus = "FAILED"
)

// Mission models an operation assigned by an admin to one or more avengers.
type Mission struct {
	ID             string
	Name           string
	Description    string
	Status         MissionStatus
	AssignedByID   string
	ParticipantIDs []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
