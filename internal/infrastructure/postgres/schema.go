package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the users table and the uniqueness backstop for
// signup. The unique index is partial: an email may be reused once its
// previous owner is soft-deleted.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name          TEXT        NOT NULL,
			email         TEXT        NOT NULL,
			password_hash TEXT        NOT NULL,
			is_active     BOOLEAN     NOT NULL DEFAULT TRUE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_active_email_idx
			ON users (email) WHERE is_active`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
