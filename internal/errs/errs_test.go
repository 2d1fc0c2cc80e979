package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchErrorsShareOneStatus(t *testing.T) {
	for _, err := range []*HTTPError{
		NewParameterFormatError("Bad request for delays by hour!"),
		NewNoModeSelectedError(),
		NewQueryExecutionError("no such table: flights", nil),
	} {
		assert.Equal(t, http.StatusUnauthorized, err.Status, err.Code)
	}
}

func TestBody(t *testing.T) {
	raw, err := json.Marshal(NewNoModeSelectedError().Body())
	require.NoError(t, err)
	assert.JSONEq(t, `["error","Bad request no parameters given!"]`, string(raw))
}

func TestQueryExecutionError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewQueryExecutionError(cause.Error(), cause)

	assert.Equal(t, "Bad request: disk I/O error", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, err.Override)
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", NewParameterFormatError("Bad Request for airport!"))

	assert.True(t, IsKind(wrapped, CodeParameterFormat))
	assert.False(t, IsKind(wrapped, CodeNoModeSelected))
	assert.False(t, IsKind(errors.New("plain"), CodeParameterFormat))

	assert.ErrorIs(t, wrapped, &HTTPError{Code: CodeParameterFormat})
	assert.ErrorIs(t, wrapped, &HTTPError{})
	assert.NotErrorIs(t, wrapped, &HTTPError{Code: CodeQueryExecution})
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores("Too Many Requests"))
}
