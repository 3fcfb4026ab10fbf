package events

import (
	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the SSE stream route.
func RegisterRoutes(e *echo.Echo, broker *Broker, authMiddleware *auth.Middleware) {
	h := &handler{broker: broker}

	e.GET("/events", h.stream, authMiddleware.Authenticate)
}
