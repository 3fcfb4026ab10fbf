package users

import (
	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all user routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, dataDir string, authMiddleware *auth.Middleware) *Service {
	userService := NewService(db, dataDir)

	h := &handler{
		userService: userService,
	}

	users := e.Group("/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("", h.search)
	users.GET("/:id", h.retrieve)
	users.GET("/:id/avatar", h.avatar)
	users.POST("/me", h.update)
	users.POST("/me/avatar", h.uploadAvatar)

	return userService
}
