// Package token issues and verifies the signed bearer credentials the
// API hands out: short-lived access tokens and longer-lived refresh
// tokens. Tokens are self-contained; the server keeps no record of what
// it issued, so a token stays valid until its natural expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wpdmadhuranga/auth-service/internal/apierror"
)

// Payload is the verified claim set carried inside a token.
type Payload struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and validates HS256 tokens. Key and TTLs are fixed at
// construction and never change afterwards.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(secret []byte, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) IssueAccess(userID, email string) (string, error) {
	return s.sign(userID, email, s.accessTTL)
}

func (s *Service) IssueRefresh(userID, email string) (string, error) {
	return s.sign(userID, email, s.refreshTTL)
}

func (s *Service) sign(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", apierror.NewInternal("sign token: " + err.Error())
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the payload. Failures
// are classified: expiry → TokenExpired, anything else → BadToken.
func (s *Service) Verify(tokenString string) (*Payload, error) {
	t, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apierror.NewTokenExpired("Token has expired")
		}
		return nil, apierror.NewBadToken("Invalid token")
	}

	c, ok := t.Claims.(*claims)
	if !ok || !t.Valid {
		return nil, apierror.NewBadToken("Invalid token")
	}
	return payloadFrom(c), nil
}

// Decode returns the payload without checking signature or expiry.
// For inspection only; it must never gate access to anything.
func (s *Service) Decode(tokenString string) *Payload {
	c := &claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, c); err != nil {
		return nil
	}
	return payloadFrom(c)
}

func payloadFrom(c *claims) *Payload {
	p := &Payload{
		UserID: c.UserID,
		Email:  c.Email,
	}
	if c.IssuedAt != nil {
		p.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}
