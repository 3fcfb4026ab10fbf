package favorites

import (
	"net/http"
	"strconv"

	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/labstack/echo/v4"
)

type handler struct {
	favoriteService *Service
}

func (h *handler) toggle(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	booklistID, err := strconv.Atoi(c.Param("booklist_id"))
	if err != nil {
		return errcodes.NotFound("Booklist")
	}

	favorited, err := h.favoriteService.Toggle(ctx, current.ID, booklistID)
	if err != nil {
		return err
	}

	resp := struct {
		Favorited bool `json:"favorited"`
	}{favorited}

	return c.JSON(http.StatusOK, resp)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	views, err := h.favoriteService.List(ctx, current.ID)
	if err != nil {
		return err
	}

	resp := struct {
		Favorites []*FavoriteView `json:"favorites"`
	}{views}

	return c.JSON(http.StatusOK, resp)
}
