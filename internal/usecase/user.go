package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wpdmadhuranga/auth-service/internal/apierror"
	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/repository"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type UserUsecase struct {
	users  repository.UserRepository
	hasher Verifier
}

func NewUserUsecase(users repository.UserRepository, hasher Verifier) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher}
}

func (u *UserUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apierror.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile changes the display name. Email is immutable after
// creation; there is deliberately no path that touches it.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)

	user, err := u.users.UpdateByID(ctx, userID, repository.UpdateUser{Name: &name})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apierror.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ChangePassword rotates the stored hash after checking the current
// password against the one lookup that exposes it.
func (u *UserUsecase) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := u.users.FindByIDWithPassword(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apierror.NewNotFound("User not found")
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(current, user.PasswordHash) {
		return apierror.NewUnauthorized("Current password is incorrect")
	}

	if _, err := u.users.UpdateByID(ctx, userID, repository.UpdateUser{Password: &next}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Deactivate soft-deletes the account. The record stays in storage but
// disappears from every lookup.
func (u *UserUsecase) Deactivate(ctx context.Context, userID string) error {
	affected, err := u.users.SoftDeleteByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if !affected {
		return apierror.NewNotFound("User not found")
	}
	return nil
}

func (u *UserUsecase) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := u.users.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
