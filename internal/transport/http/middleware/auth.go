package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wpdmadhuranga/auth-service/internal/apierror"
	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/response"
	"github.com/wpdmadhuranga/auth-service/internal/token"
)

// Context keys under which the gate publishes the authenticated
// identity. Handlers read them, never write.
const (
	UserKey   = "user"
	UserIDKey = "userID"
)

// TokenVerifier is the subset of the token service the gate needs.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Payload, error)
}

// UserFinder is the subset of the user repository the gate needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth is the authentication gate: it extracts the Bearer token,
// verifies it, resolves the user, and attaches both user and userID to
// the request context. An absent or inactive user is indistinguishable
// from an unknown one.
func Auth(tokens TokenVerifier, users UserFinder, resp *response.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			resp.AbortError(c, apierror.NewUnauthorized("Access token is required"))
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		payload, err := tokens.Verify(rawToken)
		if err != nil {
			resp.AbortError(c, err)
			return
		}

		user, err := users.FindByID(c.Request.Context(), payload.UserID)
		if err != nil {
			// Only a genuinely unknown (or soft-deleted) user is an auth
			// failure. A storage outage must not masquerade as one.
			if errors.Is(err, domain.ErrUserNotFound) {
				resp.AbortError(c, apierror.NewUnauthorized("User not found"))
				return
			}
			resp.AbortError(c, err)
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}
