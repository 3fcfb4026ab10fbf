package auth

import (
	"net/http"
	"time"

	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "hondana_session"
	// CookieMaxAge is how long the cookie is valid.
	CookieMaxAge = 7 * 24 * time.Hour // 7 days
)

type handler struct {
	authService *Service
}

func (h *handler) setSessionCookie(c echo.Context, token string, maxAge int) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request().TLS != nil || c.Request().Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}

// signup creates an account and logs it in.
func (h *handler) signup(c echo.Context) error {
	ctx := c.Request().Context()

	params := SignupPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Signup(ctx, SignupOptions(params))
	if err != nil {
		return err
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, token, int(CookieMaxAge.Seconds()))

	return c.JSON(http.StatusCreated, user)
}

// login handles user login.
func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Authenticate(ctx, params.Email, params.Password)
	if err != nil {
		return err
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, token, int(CookieMaxAge.Seconds()))

	user.HasAvatar = user.AvatarPath != nil
	return c.JSON(http.StatusOK, user)
}

// logout clears the session cookie.
func (h *handler) logout(c echo.Context) error {
	h.setSessionCookie(c, "", -1)

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// me returns the current authenticated user's info.
func (h *handler) me(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return errcodes.Unauthorized("Not authenticated")
	}

	claims, err := h.authService.ValidateToken(cookie.Value)
	if err != nil {
		return errcodes.Unauthorized("Invalid or expired token")
	}

	user, err := h.authService.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return errcodes.Unauthorized("User not found")
	}

	return c.JSON(http.StatusOK, user)
}

// resetRequest issues a password reset token. The response is identical
// whether or not the email exists; the token itself is only logged for
// out-of-band delivery.
func (h *handler) resetRequest(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	params := ResetRequestPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	token, err := h.authService.RequestPasswordReset(ctx, params.Email)
	if err == nil {
		log.Info("password reset token issued", logger.Data{"email": params.Email, "token": token})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "If the email exists, a reset link has been sent"})
}

// resetPassword consumes a reset token and sets a new password.
func (h *handler) resetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	params := ResetPasswordPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.authService.ResetPassword(ctx, params.Token, params.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}
