package shelf

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
	shelfService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := ListShelfQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.shelfService.List(ctx, current.ID, ListOptions{Status: params.Status})
	if err != nil {
		return err
	}

	resp := struct {
		Books []*models.Book `json:"books"`
	}{books}

	return c.JSON(http.StatusOK, resp)
}

func (h *handler) add(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := AddBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, added, err := h.shelfService.Add(ctx, current.ID, AddOptions{
		ISBN:           params.ISBN,
		Title:          params.Title,
		Author:         params.Author,
		ItemCaption:    params.ItemCaption,
		BooksGenreID:   params.BooksGenreID,
		LargeImageURL:  params.LargeImageURL,
		MediumImageURL: params.MediumImageURL,
		SmallImageURL:  params.SmallImageURL,
		PublisherName:  params.PublisherName,
		SalesDate:      params.SalesDate,
		ItemURL:        params.ItemURL,
	})
	if err != nil {
		return err
	}

	resp := struct {
		Book  *models.Book `json:"book"`
		Added bool         `json:"added"`
	}{book, added}

	// 200 rather than 201 tells the client the book was already shelved.
	code := http.StatusOK
	if added {
		code = http.StatusCreated
	}

	return c.JSON(code, resp)
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := RemoveBookQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	deleted, err := h.shelfService.RemoveByISBN(ctx, current.ID, params.ISBN)
	if err != nil {
		return err
	}

	resp := struct {
		Deleted int `json:"deleted"`
	}{deleted}

	return c.JSON(http.StatusOK, resp)
}

func (h *handler) bulkStatus(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := BulkStatusPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.shelfService.BulkSetStatus(ctx, current.ID, params.IDs, params.Status); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) setMemo(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := SetMemoPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.shelfService.SetMemo(ctx, current.ID, id, params.Memo)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, book)
}
