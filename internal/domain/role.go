package domain

// Role enumerates the closed set of member roles.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAvenger Role = "AVENGER"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAvenger
}
