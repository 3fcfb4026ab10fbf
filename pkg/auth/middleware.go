package auth

import (
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/labstack/echo/v4"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate extracts and validates the JWT from the cookie. If valid, it
// verifies the user still exists and adds the user to the request context so
// every data-layer call receives the authenticated identity explicitly.
// If not authenticated, it returns 401.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		cookie, err := c.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return errcodes.Unauthorized("Authentication required")
		}

		claims, err := m.authService.ValidateToken(cookie.Value)
		if err != nil {
			return errcodes.Unauthorized("Invalid or expired token")
		}

		user, err := m.authService.GetUserByID(ctx, claims.UserID)
		if err != nil {
			return errcodes.Unauthorized("User not found")
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)

		return next(c)
	}
}

// CurrentUser returns the authenticated user stored by Authenticate.
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get("user").(*models.User)
	return user, ok
}
