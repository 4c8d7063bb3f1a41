package repository

import (
	"context"

	"github.com/wpdmadhuranga/auth-service/internal/domain"
)

// UpdateUser carries the mutable fields of a user. Nil means "leave
// unchanged". Password is plaintext; implementations hash it before
// persisting, mirroring creation.
type UpdateUser struct {
	Name     *string
	Password *string
}

// UserRepository is the persistence contract over users. Both backends
// must behave identically: lookups see active users only, the password
// hash is returned only by the ...WithPassword/FindByEmail projections,
// and Create reports domain.ErrEmailTaken when the storage-level unique
// constraint fires, not only when a pre-check caught the duplicate.
type UserRepository interface {
	// Create hashes the plaintext password and persists a new active
	// user, returning it with server-assigned ID and timestamps.
	Create(ctx context.Context, name, email, plaintextPassword string) (*domain.User, error)

	// FindByEmail returns the active user with this email, password
	// hash included. The one lookup that intentionally exposes the hash,
	// for login's server-side comparison only.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns the active user, hash excluded.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByIDWithPassword returns the active user, hash included.
	FindByIDWithPassword(ctx context.Context, id string) (*domain.User, error)

	// ExistsByEmail reports whether an active user holds this email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateByID applies the given fields to an active user and bumps
	// its update timestamp, returning the fresh record (hash excluded).
	UpdateByID(ctx context.Context, id string, update UpdateUser) (*domain.User, error)

	// SoftDeleteByID flips the user inactive. Returns false when no
	// active user matched.
	SoftDeleteByID(ctx context.Context, id string) (bool, error)

	// ListActive returns active users, newest-created first, hash
	// excluded.
	ListActive(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// CountActive returns the number of active users.
	CountActive(ctx context.Context) (int64, error)
}
