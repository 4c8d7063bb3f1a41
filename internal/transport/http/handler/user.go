package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wpdmadhuranga/auth-service/internal/apierror"
	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/middleware"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/response"
)

// userUsecaser is the subset of UserUsecase the handler needs.
type userUsecaser interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	Deactivate(ctx context.Context, userID string) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

type UserHandler struct {
	users userUsecaser
	resp  *response.Responder
}

func NewUserHandler(users userUsecaser, resp *response.Responder) *UserHandler {
	return &UserHandler{users: users, resp: resp}
}

type profileView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newProfileView(u *domain.User) profileView {
	return profileView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=6,max=128"`
	NewPassword     string `json:"newPassword"     binding:"required,min=6,max=128"`
}

type listQuery struct {
	Limit  int `form:"limit"  binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// GET /api/v1/user/profile
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, "Profile retrieved successfully", gin.H{"user": newProfileView(user)})
}

// PUT /api/v1/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, apierror.NewBadRequest(err.Error()))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), c.GetString(middleware.UserIDKey), req.Name)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, "Profile updated successfully", gin.H{"user": newProfileView(user)})
}

// PUT /api/v1/user/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.resp.Error(c, apierror.NewBadRequest(err.Error()))
		return
	}

	err := h.users.ChangePassword(c.Request.Context(), c.GetString(middleware.UserIDKey),
		req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, "Password changed successfully", nil)
}

// DELETE /api/v1/user/profile
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.users.Deactivate(c.Request.Context(), c.GetString(middleware.UserIDKey)); err != nil {
		h.resp.Error(c, err)
		return
	}

	h.resp.OK(c, "Account deactivated successfully", nil)
}

// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.resp.Error(c, apierror.NewBadRequest(err.Error()))
		return
	}

	users, err := h.users.List(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		h.resp.Error(c, err)
		return
	}

	views := make([]profileView, 0, len(users))
	for _, u := range users {
		views = append(views, newProfileView(u))
	}

	h.resp.OK(c, "Users retrieved successfully", gin.H{"users": views})
}
