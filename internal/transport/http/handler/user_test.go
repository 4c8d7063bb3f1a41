package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wpdmadhuranga/auth-service/internal/apierror"
	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/handler"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/middleware"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/response"
)

type fakeUserUsecase struct {
	profile        func(ctx context.Context, userID string) (*domain.User, error)
	updateProfile  func(ctx context.Context, userID, name string) (*domain.User, error)
	changePassword func(ctx context.Context, userID, current, next string) error
	deactivate     func(ctx context.Context, userID string) error
	list           func(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

func (f *fakeUserUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return f.profile(ctx, userID)
}

func (f *fakeUserUsecase) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	return f.updateProfile(ctx, userID, name)
}

func (f *fakeUserUsecase) ChangePassword(ctx context.Context, userID, current, next string) error {
	return f.changePassword(ctx, userID, current, next)
}

func (f *fakeUserUsecase) Deactivate(ctx context.Context, userID string) error {
	return f.deactivate(ctx, userID)
}

func (f *fakeUserUsecase) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return f.list(ctx, limit, offset)
}

// newUserEngine wires the handler behind a stub gate that injects a
// fixed identity, the way the real Auth middleware would.
func newUserEngine(uc *fakeUserUsecase, userID string) *gin.Engine {
	resp := response.NewResponder(slog.Default(), true)
	h := handler.NewUserHandler(uc, resp)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	r.GET("/user/profile", h.Profile)
	r.PUT("/user/profile", h.UpdateProfile)
	r.PUT("/user/password", h.ChangePassword)
	r.DELETE("/user/profile", h.Deactivate)
	r.GET("/users", h.List)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func activeUser() *domain.User {
	now := time.Now()
	return &domain.User{
		ID:        "u1",
		Name:      "Test User",
		Email:     "a@b.com",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProfile_ReturnsSanitizedUser(t *testing.T) {
	uc := &fakeUserUsecase{
		profile: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Errorf("userID = %q, want u1", userID)
			}
			return activeUser(), nil
		},
	}
	w := do(t, newUserEngine(uc, "u1"), http.MethodGet, "/user/profile", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.StatusCode != "10000" {
		t.Errorf("statusCode = %q, want 10000", env.StatusCode)
	}
	if env.Message != "Profile retrieved successfully" {
		t.Errorf("message = %q", env.Message)
	}
	if strings.Contains(strings.ToLower(w.Body.String()), "password") {
		t.Errorf("body leaks a password field: %s", w.Body.String())
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	var gotName string
	uc := &fakeUserUsecase{
		updateProfile: func(_ context.Context, _, name string) (*domain.User, error) {
			gotName = name
			u := activeUser()
			u.Name = name
			return u, nil
		},
	}
	w := do(t, newUserEngine(uc, "u1"), http.MethodPut, "/user/profile", `{"name":"New Name"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if gotName != "New Name" {
		t.Errorf("name passed to usecase = %q", gotName)
	}
	if env := decodeEnvelope(t, w); env.Message != "Profile updated successfully" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestUpdateProfile_RejectsShortName(t *testing.T) {
	w := do(t, newUserEngine(&fakeUserUsecase{}, "u1"), http.MethodPut, "/user/profile", `{"name":"x"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if env := decodeEnvelope(t, w); env.StatusCode != "10005" {
		t.Errorf("statusCode = %q, want 10005", env.StatusCode)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	uc := &fakeUserUsecase{
		changePassword: func(_ context.Context, _, _, _ string) error {
			return apierror.NewUnauthorized("Current password is incorrect")
		},
	}
	w := do(t, newUserEngine(uc, "u1"), http.MethodPut, "/user/password",
		`{"currentPassword":"password123","newPassword":"password456"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestChangePassword_Success(t *testing.T) {
	uc := &fakeUserUsecase{
		changePassword: func(_ context.Context, _, current, next string) error {
			if current != "password123" || next != "password456" {
				t.Errorf("passwords = (%q, %q)", current, next)
			}
			return nil
		},
	}
	w := do(t, newUserEngine(uc, "u1"), http.MethodPut, "/user/password",
		`{"currentPassword":"password123","newPassword":"password456"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
}

func TestDeactivate_Success(t *testing.T) {
	uc := &fakeUserUsecase{
		deactivate: func(_ context.Context, userID string) error {
			if userID != "u1" {
				t.Errorf("userID = %q, want u1", userID)
			}
			return nil
		},
	}
	w := do(t, newUserEngine(uc, "u1"), http.MethodDelete, "/user/profile", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); env.Message != "Account deactivated successfully" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestList_PassesPagination(t *testing.T) {
	var gotLimit, gotOffset int
	uc := &fakeUserUsecase{
		list: func(_ context.Context, limit, offset int) ([]*domain.User, error) {
			gotLimit, gotOffset = limit, offset
			return []*domain.User{activeUser()}, nil
		},
	}
	w := do(t, newUserEngine(uc, "u1"), http.MethodGet, "/users?limit=5&offset=10", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if gotLimit != 5 || gotOffset != 10 {
		t.Errorf("pagination = (%d, %d), want (5, 10)", gotLimit, gotOffset)
	}
}

func TestList_RejectsInvalidLimit(t *testing.T) {
	w := do(t, newUserEngine(&fakeUserUsecase{}, "u1"), http.MethodGet, "/users?limit=9999", "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
