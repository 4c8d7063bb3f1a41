package httptransport

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/wpdmadhuranga/auth-service/internal/apierror"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/handler"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/middleware"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/response"
)

func NewRouter(
	logger *slog.Logger,
	resp *response.Responder,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	tokens middleware.TokenVerifier,
	users middleware.UserFinder,
	corsOrigin string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(newCORS(corsOrigin))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens, users, resp)

	api := r.Group("/api/v1")

	api.GET("/health", healthHandler.Status)
	api.GET("/health/ready", healthHandler.Ready)

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	user := api.Group("/user", authMW)
	user.GET("/profile", userHandler.Profile)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.PUT("/password", userHandler.ChangePassword)
	user.DELETE("/profile", userHandler.Deactivate)

	api.GET("/users", authMW, userHandler.List)

	r.NoRoute(func(c *gin.Context) {
		resp.Error(c, apierror.NewNotFound("Route "+c.Request.URL.Path+" not found"))
	})

	return r
}

func newCORS(origin string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
