package catalog

import (
	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all catalog routes.
func RegisterRoutes(e *echo.Echo, client *Client, authMiddleware *auth.Middleware) {
	h := &handler{
		client: client,
	}

	cat := e.Group("/catalog")
	cat.Use(authMiddleware.Authenticate)

	cat.GET("/search", h.search)
	cat.GET("/ranking", h.ranking)
}
