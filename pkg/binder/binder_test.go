package binder

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Name   string `json:"name" mod:"trim" validate:"max=9"`
	Status string `json:"status" validate:"omitempty,oneof=reading tsundoku"`
}

var (
	goodJSON             = `{"name":" sakura "}`
	unknownFieldsErrJSON = `{"name":"sakura","foo":"bar"}`
	typeErrJSON          = `{"name":123}`
	validationErrJSON    = `{"name":"0123456789"}`
	oneofErrJSON         = `{"name":"sakura","status":"finished"}`
)

func newContext(body, contentType string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBind(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("rejects unsupported content types", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationXML)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "foo"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(typeErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"name" should be of type string`)
	})

	t.Run("uses mod tag to modify params", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "sakura", p.Name)
	})

	t.Run("uses validate tag to validate params", func(tt *testing.T) {
		c := newContext(validationErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"name" length must be less than or equal to 9 characters`)
	})

	t.Run("formats oneof errors", func(tt *testing.T) {
		c := newContext(oneofErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err := b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"status" must be one of the following: "reading", "tsundoku"`)
	})
}
