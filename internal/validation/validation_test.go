package validation_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/deppfellow/flightdelays/internal/errs"
	"github.com/deppfellow/flightdelays/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idRequest struct {
	ID string `query:"id"`
}

func (r *idRequest) Validate() error {
	_, err := strconv.ParseInt(r.ID, 10, 64)
	return err
}

type modeRequest struct {
	Mode string `query:"mode"`
}

func (r *modeRequest) Validate() error {
	if r.Mode == "" {
		return errors.Wrap(errs.NewNoModeSelectedError(), "resolve")
	}
	return nil
}

type countRequest struct {
	Count int `query:"count"`
}

func (r *countRequest) Validate() error {
	return nil
}

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_BindsQueryParams(t *testing.T) {
	req := &idRequest{}
	require.NoError(t, validation.BindAndValidate(newContext("/?id=42"), req))
	assert.Equal(t, "42", req.ID)
}

func TestBindAndValidate_PlainErrorIsParameterFormat(t *testing.T) {
	err := validation.BindAndValidate(newContext("/?id=abc"), &idRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, errs.CodeParameterFormat, httpErr.Code)
	assert.Equal(t, errs.ClientErrorStatus, httpErr.Status)
	assert.Equal(t, `Bad request: strconv.ParseInt: parsing "abc": invalid syntax`, httpErr.Message)
}

func TestBindAndValidate_PassesHTTPErrorThrough(t *testing.T) {
	err := validation.BindAndValidate(newContext("/"), &modeRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, errs.CodeNoModeSelected, httpErr.Code)
	assert.Equal(t, "Bad request no parameters given!", httpErr.Message)
}

func TestBindAndValidate_BindFailure(t *testing.T) {
	err := validation.BindAndValidate(newContext("/?count=many"), &countRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, errs.CodeParameterFormat, httpErr.Code)
	assert.Contains(t, httpErr.Message, "Bad request: ")
	assert.Contains(t, httpErr.Message, "many")
}
