package booklists

import (
	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/events"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all booklist routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, broker *events.Broker, authMiddleware *auth.Middleware) *Service {
	booklistService := NewService(db, broker)

	h := &handler{
		booklistService: booklistService,
	}

	lists := e.Group("/booklists")
	lists.Use(authMiddleware.Authenticate)

	lists.GET("", h.list)
	lists.POST("", h.create)
	lists.GET("/:id", h.retrieve)
	lists.POST("/:id/visibility", h.setVisibility)
	lists.DELETE("", h.delete)

	return booklistService
}
