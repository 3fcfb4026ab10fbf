package booklists

import (
	"net/http"
	"strconv"

	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	booklistService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := CreateBooklistPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.booklistService.CreateFromSelection(ctx, current.ID, params.Name, params.BookIDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, list)
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := ListBooklistsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	ownerID := params.OwnerID
	if ownerID == 0 {
		ownerID = current.ID
	}

	lists, err := h.booklistService.ListByOwner(ctx, current.ID, ownerID)
	if err != nil {
		return err
	}

	resp := struct {
		Booklists []*models.Booklist `json:"booklists"`
	}{lists}

	return c.JSON(http.StatusOK, resp)
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Booklist")
	}

	list, err := h.booklistService.Retrieve(ctx, current.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

func (h *handler) setVisibility(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Booklist")
	}

	params := SetVisibilityPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.booklistService.SetVisibility(ctx, current.ID, id, params.Visibility)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := DeleteBooklistsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.booklistService.Delete(ctx, current.ID, params.IDs); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
