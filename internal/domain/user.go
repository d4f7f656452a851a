package domain

import "time"

// User is the domain model for a league member (admin or avenger).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Balance      float64
	Alive        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
