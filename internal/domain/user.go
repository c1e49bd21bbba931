package domain

import "time"

// User is the domain model for a registered account. Cedula is the
// external-facing subject key (national ID).
type User struct {
	Cedula       string
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	RoleID       int
	MFAEnabled   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
