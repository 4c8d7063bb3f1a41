package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

// User is the identity record. PasswordHash is populated only by the
// lookups that need it for server-side comparison and must never reach
// an outward-facing response.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy with the password hash stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
