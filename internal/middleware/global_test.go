package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/flightdelays/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "dispatch error",
			err:        errs.NewParameterFormatError("Bad Request for airport!"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   []string{"error", "Bad Request for airport!"},
		},
		{
			name:       "wrapped dispatch error",
			err:        errors.Wrap(errs.NewNoModeSelectedError(), "dispatch"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   []string{"error", "Bad request no parameters given!"},
		},
		{
			name:       "unknown route",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   []string{"error", "Route not found"},
		},
		{
			name:       "method not allowed",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   []string{"error", "Method Not Allowed"},
		},
		{
			name:       "anything else is a query failure",
			err:        errors.New("database is locked"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   []string{"error", "Bad request: database is locked"},
		},
	}

	global := &GlobalMiddlewares{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body []string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestGlobalErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, c.String(http.StatusOK, "partial"))
	(&GlobalMiddlewares{}).GlobalErrorHandler(errs.NewNoModeSelectedError(), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
