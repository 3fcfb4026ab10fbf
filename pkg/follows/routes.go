package follows

import (
	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all follow routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, userService *users.Service, authMiddleware *auth.Middleware) *Service {
	followService := NewService(db)

	h := &handler{
		followService: followService,
		userService:   userService,
	}

	follows := e.Group("/follows")
	follows.Use(authMiddleware.Authenticate)

	follows.POST("/:id", h.follow)
	follows.DELETE("/:id", h.unfollow)
	follows.GET("/:id/status", h.status)
	follows.GET("/:id/edges", h.list)

	return followService
}
