package follows

import (
	"net/http"
	"strconv"

	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/hondanaapp/hondana/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	followService *Service
	userService   *users.Service
}

func (h *handler) follow(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	if err := h.followService.Follow(ctx, current.ID, targetID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) unfollow(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	if err := h.followService.Unfollow(ctx, current.ID, targetID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) status(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	following, err := h.followService.IsFollowing(ctx, current.ID, targetID)
	if err != nil {
		return err
	}

	resp := struct {
		Following bool `json:"following"`
	}{following}

	return c.JSON(http.StatusOK, resp)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	params := ListEdgesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	ids, err := h.followService.ListEdges(ctx, userID, params.Direction)
	if err != nil {
		return err
	}

	profiles, err := h.userService.ProfilesByIDs(ctx, ids)
	if err != nil {
		return err
	}

	resp := struct {
		Users []*models.Profile `json:"users"`
	}{profiles}

	return c.JSON(http.StatusOK, resp)
}
