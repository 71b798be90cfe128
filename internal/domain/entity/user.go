package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin      = "admin"      // may edit settings and submit returns
	RoleAccountant = "accountant" // may import statements and work on draft returns
)

// User represents a system user (belongs to a Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Name         string
	Role         string // admin, accountant
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
