package errs

import (
	"errors"
	"strings"
)

// FieldError represents a field-level validation error.
//
//	{ "field": "airport", "error": "must be 3 letters" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error kinds carried in HTTPError.Code.
const (
	// CodeParameterFormat covers a non-integer id, an unparseable date, a
	// malformed airport code or a non-boolean flag value.
	CodeParameterFormat = "PARAMETER_FORMAT"

	// CodeNoModeSelected means every recognised parameter was empty.
	CodeNoModeSelected = "NO_MODE_SELECTED"

	// CodeQueryExecution wraps a failure of the underlying store.
	CodeQueryExecution = "QUERY_EXECUTION"
)

// HTTPError is the single error type translated into HTTP responses.
//
// Fields:
//   - Code: machine-friendly kind (e.g. "PARAMETER_FORMAT").
//   - Message: human-friendly message, sent to the client verbatim.
//   - Status: HTTP status code.
//   - Override: whether the message is safe to show as-is.
//   - Errors: optional per-field errors.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`

	// cause is the lower-level error this one was built from, if any.
	cause error
}

// Error makes *HTTPError satisfy the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *HTTPError of the same kind. A target
// without a Code matches any *HTTPError.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// Body is the wire representation of the error: a two element JSON array.
//
//	["error", "Bad Request for airport!"]
func (e *HTTPError) Body() []string {
	return []string{"error", e.Message}
}

// IsKind reports whether err is, or wraps, an *HTTPError with the given code.
func IsKind(err error, code string) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.Code == code
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
