package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wpdmadhuranga/auth-service/internal/apierror"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/response"
	"github.com/wpdmadhuranga/auth-service/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, name, email, password string) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

type AuthHandler struct {
	auth authUsecaser
	resp *response.Responder
}

func NewAuthHandler(auth authUsecaser, resp *response.Responder) *AuthHandler {
	return &AuthHandler{auth: auth, resp: resp}
}

type signupRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type userSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type authData struct {
	User   userSummary `json:"user"`
	Tokens tokenPair   `json:"tokens"`
}

func newAuthData(result *usecase.AuthResult) authData {
	return authData{
		User: userSummary{
			ID:        result.User.ID,
			Name:      result.User.Name,
			Email:     result.User.Email,
			CreatedAt: result.User.CreatedAt,
		},
		Tokens: tokenPair{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		},
	}
}

// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, apierror.NewBadRequest(err.Error()))
		return
	}

	result, err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.Created(c, "User created successfully", newAuthData(result))
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, apierror.NewBadRequest(err.Error()))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, "Login successful", newAuthData(result))
}
