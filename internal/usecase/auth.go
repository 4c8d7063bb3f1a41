package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wpdmadhuranga/auth-service/internal/apierror"
	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/email"
	"github.com/wpdmadhuranga/auth-service/internal/metrics"
	"github.com/wpdmadhuranga/auth-service/internal/repository"
	"github.com/wpdmadhuranga/auth-service/internal/token"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailTaken         = "User already exists with this email"
)

// Verifier is the subset of the password hasher login needs.
type Verifier interface {
	Verify(plaintext, hash string) bool
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher Verifier
	tokens *token.Service
	sender email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher Verifier, tokens *token.Service, sender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		sender: sender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// AuthResult is what signup and login hand back: the sanitized user and
// a fresh access/refresh token pair.
type AuthResult struct {
	User         domain.User
	AccessToken  string
	RefreshToken string
}

func (u *AuthUsecase) Signup(ctx context.Context, name, emailAddr, plaintext string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	emailAddr = NormalizeEmail(emailAddr)

	exists, err := u.users.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apierror.NewBadRequest(msgEmailTaken)
	}

	// The pre-check above races with concurrent signups; the storage
	// unique constraint is the backstop and surfaces here.
	user, err := u.users.Create(ctx, name, emailAddr, plaintext)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apierror.NewBadRequest(msgEmailTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	result, err := u.issueTokens(user)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed welcome email never fails the signup.
	subject := "Welcome!"
	body := fmt.Sprintf("<p>Hi %s, your account was created successfully.</p>", user.Name)
	if err := u.sender.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "error", err)
	}

	metrics.SignupsTotal.Inc()
	return result, nil
}

func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plaintext string) (*AuthResult, error) {
	emailAddr = NormalizeEmail(emailAddr)

	// A missing user and a wrong password produce the same response, so
	// the endpoint cannot be used to enumerate accounts.
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, apierror.NewUnauthorized(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(plaintext, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, apierror.NewUnauthorized(msgInvalidCredentials)
	}

	result, err := u.issueTokens(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return result, nil
}

func (u *AuthUsecase) issueTokens(user *domain.User) (*AuthResult, error) {
	access, err := u.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := u.tokens.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &AuthResult{
		User:         user.Sanitized(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// NormalizeEmail lowercases and trims an email before any lookup or
// write, so uniqueness is case-insensitive.
func NormalizeEmail(emailAddr string) string {
	return strings.ToLower(strings.TrimSpace(emailAddr))
}
