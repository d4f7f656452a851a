package dto

import "time"

// AttendanceSessionResponse returns the generated code and session window.
type AttendanceSessionResponse struct {
	SessionID string    `json:"session_id"`
	Code      string    `json:"code"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// MarkAttendanceRequest carries the code an avenger submits.
type MarkAttendanceRequest struct {
	Code string `json:"code"`
}

// AttendanceRecordResponse describes one marked attendance.
type AttendanceRecordResponse struct {
	SessionID   string    `json:"session_id"`
	SessionCode string    `json:"session_code"`
	Username    string    `json:"username"`
	MarkedAt    time.Time `json:"marked_at"`
}

// AttendanceStatsResponse summarizes a member's attendance.
type AttendanceStatsResponse struct {
	Attended      int64 `json:"attended"`
	TotalSessions int64 `json:"total_sessions"`
}
