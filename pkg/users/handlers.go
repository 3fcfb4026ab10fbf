package users

import (
	"io"
	"net/http"
	"strconv"

	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// maxAvatarBytes caps uploaded avatar size before decoding.
const maxAvatarBytes = 5 << 20

type handler struct {
	userService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	user, err := h.userService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	// Other users only ever see the public profile.
	current, _ := auth.CurrentUser(c)
	if current == nil || current.ID != user.ID {
		return c.JSON(http.StatusOK, user.ToProfile())
	}

	return c.JSON(http.StatusOK, user)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := UpdateProfilePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Update(ctx, current.ID, UpdateOptions{
		DisplayName: params.DisplayName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchUsersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	profiles, total, err := h.userService.Search(ctx, SearchOptions{
		Query:  params.Query,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return err
	}

	resp := struct {
		Users []*models.Profile `json:"users"`
		Total int               `json:"total"`
	}{profiles, total}

	return c.JSON(http.StatusOK, resp)
}

func (h *handler) uploadAvatar(c echo.Context) error {
	ctx := c.Request().Context()

	current, ok := auth.CurrentUser(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := UploadAvatarPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	fileHeader, ok := params.FormFiles["avatar"]
	if !ok {
		return errcodes.ValidationError(`"avatar" file is required`)
	}
	if fileHeader.Size > maxAvatarBytes {
		return errcodes.ValidationError("Avatar must be smaller than 5MB")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxAvatarBytes))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.userService.SaveAvatar(ctx, current.ID, data); err != nil {
		return err
	}

	user, err := h.userService.Retrieve(ctx, current.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (h *handler) avatar(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("User")
	}

	path, err := h.userService.AvatarFilePath(ctx, id)
	if err != nil {
		return err
	}

	return c.File(path)
}
