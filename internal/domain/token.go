package domain

import "time"

// TokenClass differentiates access tokens from refresh tokens.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "ACCESS"
	TokenClassRefresh TokenClass = "REFRESH"
)

// Credential represents issued authentication token metadata.
// Tokens are self-contained; nothing here is persisted server-side.
type Credential struct {
	SubjectID string
	Role      Role
	Class     TokenClass
	IssuedAt  time.Time
	ExpiresAt time.Time
}
