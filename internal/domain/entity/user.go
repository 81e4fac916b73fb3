package entity

import "time"

// Valid roles for User. Role strings travel in the JWT and gate which
// mutation endpoints a caller may reach.
const (
	RoleAdmin            = "Admin"
	RoleBaseCommander    = "Base Commander"
	RoleLogisticsOfficer = "Logistics Officer"
)

// User represents an operator of the system.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash; never plaintext past the auth boundary
	FullName     string
	Role         string // see Role* constants
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
