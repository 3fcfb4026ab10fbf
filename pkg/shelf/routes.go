package shelf

import (
	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/events"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all shelf routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, broker *events.Broker, authMiddleware *auth.Middleware) *Service {
	shelfService := NewService(db, broker)

	h := &handler{
		shelfService: shelfService,
	}

	books := e.Group("/shelf")
	books.Use(authMiddleware.Authenticate)

	books.GET("", h.list)
	books.POST("", h.add)
	books.DELETE("", h.remove)
	books.POST("/bulk-status", h.bulkStatus)
	books.POST("/:id/memo", h.setMemo)

	return shelfService
}
