package favorites

import (
	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all favorite routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	favoriteService := NewService(db)

	h := &handler{
		favoriteService: favoriteService,
	}

	favs := e.Group("/favorites")
	favs.Use(authMiddleware.Authenticate)

	favs.GET("", h.list)
	favs.POST("/:booklist_id", h.toggle)

	return favoriteService
}
