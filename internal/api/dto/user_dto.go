package dto

// UserResponse describes a member.
type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Balance  float64 `json:"balance"`
	Alive    bool    `json:"alive"`
}

// UserStatusRequest toggles a member's alive flag.
type UserStatusRequest struct {
	Alive bool `json:"alive"`
}

// DashboardStatsResponse carries admin dashboard aggregates.
type DashboardStatsResponse struct {
	TotalAvengers     int64   `json:"total_avengers"`
	ActiveMissions    int64   `json:"active_missions"`
	UnreadFeedback    int64   `json:"unread_feedback"`
	PaymentsThisMonth float64 `json:"payments_this_month"`
}
