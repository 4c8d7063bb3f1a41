// Package repositorytest holds the contract suite both storage backends
// must pass: behavior that lives in WHERE clauses, sort options, and
// unique indexes, which fakes cannot exercise.
package repositorytest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/repository"
)

// Run exercises one backend against the shared contract. The repository
// is used as-is; test data carries unique emails so runs do not collide
// in a persistent database.
func Run(t *testing.T, repo repository.UserRepository) {
	t.Run("DuplicateEmailConstraint", func(t *testing.T) {
		ctx := context.Background()
		email := uniqueEmail()

		first, err := repo.Create(ctx, "First Owner", email, "password123")
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		// Second insert hits the storage-level unique constraint
		// directly; no pre-check runs at this layer.
		if _, err := repo.Create(ctx, "Race Loser", email, "password123"); !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("second create error = %v, want ErrEmailTaken", err)
		}

		// Deactivating the owner frees the email: the constraint only
		// spans active users.
		if _, err := repo.SoftDeleteByID(ctx, first.ID); err != nil {
			t.Fatalf("soft delete: %v", err)
		}
		reused, err := repo.Create(ctx, "Second Owner", email, "password123")
		if err != nil {
			t.Fatalf("create after deactivation: %v", err)
		}
		if reused.ID == first.ID {
			t.Error("reused email produced the same user id")
		}
	})

	t.Run("SoftDeleteInvisibility", func(t *testing.T) {
		ctx := context.Background()
		email := uniqueEmail()

		u, err := repo.Create(ctx, "Short Lived", email, "password123")
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		affected, err := repo.SoftDeleteByID(ctx, u.ID)
		if err != nil {
			t.Fatalf("soft delete: %v", err)
		}
		if !affected {
			t.Fatal("soft delete affected nothing")
		}

		if _, err := repo.FindByEmail(ctx, email); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("FindByEmail after deactivation: err = %v, want ErrUserNotFound", err)
		}
		if _, err := repo.FindByID(ctx, u.ID); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("FindByID after deactivation: err = %v, want ErrUserNotFound", err)
		}
		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if exists {
			t.Error("ExistsByEmail = true for a deactivated user")
		}
		if containsID(t, listAll(t, repo), u.ID) {
			t.Error("ListActive still returns a deactivated user")
		}

		// The record persists in storage: a second soft delete finds it,
		// but no longer in the active state it keys on.
		affected, err = repo.SoftDeleteByID(ctx, u.ID)
		if err != nil {
			t.Fatalf("second soft delete: %v", err)
		}
		if affected {
			t.Error("second soft delete affected a row, want already-inactive no-op")
		}
	})

	t.Run("ListActiveNewestFirst", func(t *testing.T) {
		ctx := context.Background()

		var ids []string
		for _, name := range []string{"Oldest", "Middle", "Newest"} {
			u, err := repo.Create(ctx, name, uniqueEmail(), "password123")
			if err != nil {
				t.Fatalf("create %s: %v", name, err)
			}
			ids = append(ids, u.ID)
			// Creation timestamps must be distinguishable for the sort.
			time.Sleep(10 * time.Millisecond)
		}

		users := listAll(t, repo)
		positions := make([]int, len(ids))
		for i, id := range ids {
			positions[i] = indexOfID(t, users, id)
		}
		if !(positions[2] < positions[1] && positions[1] < positions[0]) {
			t.Errorf("list order (oldest, middle, newest) = %v, want newest first", positions)
		}
		for _, u := range users {
			if u.PasswordHash != "" {
				t.Fatalf("ListActive leaks a password hash for user %s", u.ID)
			}
		}
	})
}

func uniqueEmail() string {
	return uuid.NewString() + "@contract.test"
}

func listAll(t *testing.T, repo repository.UserRepository) []*domain.User {
	t.Helper()
	users, err := repo.ListActive(context.Background(), 1000, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return users
}

func containsID(t *testing.T, users []*domain.User, id string) bool {
	t.Helper()
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func indexOfID(t *testing.T, users []*domain.User, id string) int {
	t.Helper()
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	t.Fatalf("user %s missing from ListActive", id)
	return -1
}
