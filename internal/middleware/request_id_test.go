package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "generated when missing", incoming: "", reuse: false},
		{name: "reused when well formed", incoming: "abc-123", reuse: true},
		{name: "replaced when too long", incoming: strings.Repeat("a", 200), reuse: false},
		{name: "replaced when it has newlines", incoming: "abc\ninjected", reuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			err := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return nil
			})(c)
			require.NoError(t, err)

			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			if tt.reuse {
				assert.Equal(t, tt.incoming, seen)
			} else {
				_, parseErr := uuid.Parse(seen)
				assert.NoError(t, parseErr)
			}
		})
	}
}
