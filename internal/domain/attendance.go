package domain

import "time"

// AttendanceSession is a time-boxed window during which members may mark
// presence with a one-time numeric code. A code is unique among currently
// active sessions only; once a session deactivates its code may recur.
type AttendanceSession struct {
	ID        string
	AdminID   string
	Code      string
	StartTime time.Time
	EndTime   time.Time
	Active    bool
	CreatedAt time.Time
}

// AttendanceRecord registers a single member's presence in a session.
// Keyed by (SessionID, UserID); created once, never mutated.
type AttendanceRecord struct {
	SessionID string
	UserID    string
	MarkedAt  time.Time
}
