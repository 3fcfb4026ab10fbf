package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hondanaapp/hondana/pkg/binder"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestHandlerResetRequest_GenericResponse(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db, "test-secret")
	h := &handler{authService: svc}
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupOptions{
		DisplayName: "Yomiko",
		Email:       "yomiko@example.com",
		Password:    "password123",
	})
	require.NoError(t, err)

	// Known email: a token is issued, but the response stays generic.
	c, rec := newHandlerContext(t, http.MethodPost, "/auth/reset-request", `{"email":"yomiko@example.com"}`)
	require.NoError(t, h.resetRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "If the email exists")

	user := &models.User{}
	err = db.NewSelect().Model(user).Where("email = ?", "yomiko@example.com").Scan(ctx)
	require.NoError(t, err)
	require.NotNil(t, user.ResetToken)
	assert.NotEmpty(t, *user.ResetToken)

	// Unknown email: identical response, nothing issued.
	c, rec = newHandlerContext(t, http.MethodPost, "/auth/reset-request", `{"email":"nobody@example.com"}`)
	require.NoError(t, h.resetRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "If the email exists")
}
