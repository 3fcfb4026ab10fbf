package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all auth routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, jwtSecret string) *Service {
	authService := NewService(db, jwtSecret)

	h := &handler{
		authService: authService,
	}

	auth := e.Group("/auth")
	auth.POST("/signup", h.signup)
	auth.POST("/login", h.login)
	auth.POST("/logout", h.logout)
	auth.GET("/me", h.me)
	auth.POST("/reset-request", h.resetRequest)
	auth.POST("/reset", h.resetPassword)

	return authService
}
