// Package apierror defines the closed set of failure kinds the API can
// return, together with their HTTP statuses and the wire status codes
// clients depend on.
package apierror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	BadToken Kind = iota
	TokenExpired
	Unauthorized
	Forbidden
	BadRequest
	NotFound
	Internal
)

// Wire status codes are a cross-client contract and must stay stable
// across releases, independent of message text.
const (
	CodeSuccess = "10000"
	CodeCreated = "10001"
)

func (k Kind) HTTPStatus() int {
	switch k {
	case BadToken, TokenExpired, Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) WireCode() string {
	switch k {
	case BadToken, TokenExpired, Unauthorized:
		return "10001"
	case Internal:
		return "10003"
	case NotFound:
		return "10004"
	case BadRequest:
		return "10005"
	case Forbidden:
		return "10006"
	default:
		return "10007"
	}
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NewBadToken(message string) *Error {
	if message == "" {
		message = "Token is not valid"
	}
	return New(BadToken, message)
}

func NewTokenExpired(message string) *Error {
	if message == "" {
		message = "Token is expired"
	}
	return New(TokenExpired, message)
}

func NewUnauthorized(message string) *Error {
	if message == "" {
		message = "Authentication Failure"
	}
	return New(Unauthorized, message)
}

func NewForbidden(message string) *Error {
	if message == "" {
		message = "Permission denied"
	}
	return New(Forbidden, message)
}

func NewBadRequest(message string) *Error {
	if message == "" {
		message = "Bad Request"
	}
	return New(BadRequest, message)
}

func NewNotFound(message string) *Error {
	if message == "" {
		message = "Not Found"
	}
	return New(NotFound, message)
}

func NewInternal(message string) *Error {
	if message == "" {
		message = "Internal error"
	}
	return New(Internal, message)
}

// From classifies err into exactly one Error before it crosses the
// response boundary. Anything unrecognized is coerced to Internal.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternal(err.Error())
}
