package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/wpdmadhuranga/auth-service/internal/apierror"
	"github.com/wpdmadhuranga/auth-service/internal/token"
)

const testSecret = "token-test-secret-at-least-32-chars!!"

func newService() *token.Service {
	return token.NewService([]byte(testSecret), 7*24*time.Hour, 30*24*time.Hour)
}

func assertKind(t *testing.T, err error, kind apierror.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	apiErr := apierror.From(err)
	if apiErr.Kind != kind {
		t.Fatalf("error kind = %d, want %d (message %q)", apiErr.Kind, kind, apiErr.Message)
	}
}

func TestIssueAccess_VerifyRoundTrip(t *testing.T) {
	svc := newService()

	signed, err := svc.IssueAccess("42", "test@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	payload, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if payload.UserID != "42" {
		t.Errorf("userID = %q, want %q", payload.UserID, "42")
	}
	if payload.Email != "test@example.com" {
		t.Errorf("email = %q, want %q", payload.Email, "test@example.com")
	}
	if !payload.ExpiresAt.After(time.Now()) {
		t.Errorf("expiresAt %v is not in the future", payload.ExpiresAt)
	}
}

func TestIssueRefresh_OutlivesAccess(t *testing.T) {
	svc := newService()

	access, err := svc.IssueAccess("42", "test@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := svc.IssueRefresh("42", "test@example.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	ap, err := svc.Verify(access)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	rp, err := svc.Verify(refresh)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if !rp.ExpiresAt.After(ap.ExpiresAt) {
		t.Errorf("refresh expiry %v should be after access expiry %v", rp.ExpiresAt, ap.ExpiresAt)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := token.NewService([]byte(testSecret), -time.Minute, time.Hour)

	signed, err := svc.IssueAccess("42", "test@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	_, err = svc.Verify(signed)
	assertKind(t, err, apierror.TokenExpired)
}

func TestVerify_TamperedToken(t *testing.T) {
	svc := newService()

	signed, err := svc.IssueAccess("42", "test@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	// Flip the first byte of the signature segment.
	b := []byte(signed)
	i := strings.LastIndexByte(signed, '.') + 1
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	_, err = svc.Verify(string(b))
	assertKind(t, err, apierror.BadToken)
}

func TestVerify_WrongKey(t *testing.T) {
	signed, err := newService().IssueAccess("42", "test@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	other := token.NewService([]byte("a-completely-different-32-char-key!"), time.Hour, 2*time.Hour)
	_, err = other.Verify(signed)
	assertKind(t, err, apierror.BadToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := newService().Verify("not.a.jwt")
	assertKind(t, err, apierror.BadToken)
}

func TestDecode_SkipsSignatureAndExpiry(t *testing.T) {
	expired := token.NewService([]byte(testSecret), -time.Minute, time.Hour)

	signed, err := expired.IssueAccess("42", "test@example.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	// A service with a different key can still decode the payload.
	other := token.NewService([]byte("a-completely-different-32-char-key!"), time.Hour, 2*time.Hour)
	payload := other.Decode(signed)
	if payload == nil {
		t.Fatal("decode returned nil for a structurally valid token")
	}
	if payload.UserID != "42" || payload.Email != "test@example.com" {
		t.Errorf("decoded payload = %+v", payload)
	}

	if got := other.Decode("garbage"); got != nil {
		t.Errorf("decode of garbage = %+v, want nil", got)
	}
}
