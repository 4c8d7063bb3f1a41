package apierror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/wpdmadhuranga/auth-service/internal/apierror"
)

func TestKind_HTTPStatusAndWireCode(t *testing.T) {
	cases := []struct {
		kind   apierror.Kind
		status int
		code   string
	}{
		{apierror.BadToken, http.StatusUnauthorized, "10001"},
		{apierror.TokenExpired, http.StatusUnauthorized, "10001"},
		{apierror.Unauthorized, http.StatusUnauthorized, "10001"},
		{apierror.Internal, http.StatusInternalServerError, "10003"},
		{apierror.NotFound, http.StatusNotFound, "10004"},
		{apierror.BadRequest, http.StatusBadRequest, "10005"},
		{apierror.Forbidden, http.StatusForbidden, "10006"},
	}
	for _, tc := range cases {
		if got := tc.kind.HTTPStatus(); got != tc.status {
			t.Errorf("kind %d: status = %d, want %d", tc.kind, got, tc.status)
		}
		if got := tc.kind.WireCode(); got != tc.code {
			t.Errorf("kind %d: wire code = %q, want %q", tc.kind, got, tc.code)
		}
	}
}

func TestFrom_PassesThroughAPIErrors(t *testing.T) {
	orig := apierror.NewBadRequest("bad input")
	got := apierror.From(fmt.Errorf("handler: %w", orig))
	if got != orig {
		t.Errorf("From did not unwrap to the original *Error")
	}
}

func TestFrom_CoercesUnknownToInternal(t *testing.T) {
	got := apierror.From(errors.New("disk on fire"))
	if got.Kind != apierror.Internal {
		t.Errorf("kind = %d, want Internal", got.Kind)
	}
	if got.Message != "disk on fire" {
		t.Errorf("message = %q, want original error text", got.Message)
	}
}

func TestConstructors_DefaultMessages(t *testing.T) {
	if got := apierror.NewUnauthorized("").Message; got != "Authentication Failure" {
		t.Errorf("unauthorized default = %q", got)
	}
	if got := apierror.NewBadToken("").Message; got != "Token is not valid" {
		t.Errorf("bad token default = %q", got)
	}
	if got := apierror.NewTokenExpired("").Message; got != "Token is expired" {
		t.Errorf("token expired default = %q", got)
	}
}
