package dto

// RegisterRequest payload for new members.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse summarizes the authenticated principal; the tokens travel in
// http-only cookies, not in the body.
type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
