package booklists

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/hondanaapp/hondana/pkg/binder"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerContext(t *testing.T, target string, current *models.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.Set("user", current)

	return c, rec
}

func TestHandlerList_BindsOwnerIDQueryParam(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	h := &handler{booklistService: svc}
	ctx := context.Background()
	owner := createUser(ctx, t, svc.db, "Owner", "owner@example.com")
	viewer := createUser(ctx, t, svc.db, "Viewer", "viewer@example.com")

	open, err := svc.CreateFromSelection(ctx, owner.ID, "Open picks", nil)
	require.NoError(t, err)
	_, err = svc.SetVisibility(ctx, owner.ID, open.ID, models.VisibilityOpen)
	require.NoError(t, err)
	_, err = svc.CreateFromSelection(ctx, owner.ID, "Private picks", nil)
	require.NoError(t, err)

	c, rec := newHandlerContext(t, "/booklists?owner_id="+strconv.Itoa(owner.ID), viewer)

	require.NoError(t, h.list(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Open picks")
	assert.NotContains(t, rec.Body.String(), "Private picks")
}

func TestHandlerList_DefaultsToCurrentUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	h := &handler{booklistService: svc}
	ctx := context.Background()
	owner := createUser(ctx, t, svc.db, "Owner", "owner@example.com")

	_, err := svc.CreateFromSelection(ctx, owner.ID, "Mine", nil)
	require.NoError(t, err)

	c, rec := newHandlerContext(t, "/booklists", owner)

	require.NoError(t, h.list(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mine")
}
