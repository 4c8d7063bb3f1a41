package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/repository"
)

// Hasher is the subset of the password hasher the repository needs.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// UserRepository is the relational implementation of
// repository.UserRepository. User IDs are bigint identity values,
// exposed as their decimal string form.
type UserRepository struct {
	pool   *pgxpool.Pool
	hasher Hasher
}

func NewUserRepository(pool *pgxpool.Pool, hasher Hasher) *UserRepository {
	return &UserRepository{pool: pool, hasher: hasher}
}

const userColumns = `id, name, email, password_hash, is_active, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, name, email, plaintextPassword string) (*domain.User, error) {
	hash, err := r.hasher.Hash(plaintextPassword)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		name, email, hash,
	)

	u, err := scanUser(row)
	if err != nil {
		// The partial unique index on (email) WHERE is_active is the
		// backstop for the signup pre-check race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active`, email)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.FindByIDWithPassword(ctx, id)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (r *UserRepository) FindByIDWithPassword(ctx context.Context, id string) (*domain.User, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND is_active`, numID)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND is_active)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id string, update repository.UpdateUser) (*domain.User, error) {
	numID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var hash *string
	if update.Password != nil {
		h, err := r.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET name          = COALESCE($2, name),
		     password_hash = COALESCE($3, password_hash),
		     updated_at    = now()
		 WHERE id = $1 AND is_active
		 RETURNING `+userColumns,
		numID, update.Name, hash,
	)

	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (r *UserRepository) SoftDeleteByID(ctx context.Context, id string) (bool, error) {
	numID, err := parseID(id)
	if err != nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_active = FALSE, updated_at = now()
		 WHERE id = $1 AND is_active`, numID)
	if err != nil {
		return false, fmt.Errorf("soft delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_active
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = ""
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE is_active`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u  domain.User
		id int64
	)
	err := row.Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.ID = strconv.FormatInt(id, 10)
	return &u, nil
}

func parseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}
