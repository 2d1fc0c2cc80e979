package errs

import (
	"net/http"
)

// ClientErrorStatus is the status used for every dispatch failure. The
// service does not distinguish client and server faults on the wire.
const ClientErrorStatus = http.StatusUnauthorized

// NewParameterFormatError reports a request parameter that failed coercion
// or validation.
func NewParameterFormatError(message string, fieldErrors ...FieldError) *HTTPError {
	return &HTTPError{
		Code:     CodeParameterFormat,
		Message:  message,
		Status:   ClientErrorStatus,
		Override: true,
		Errors:   fieldErrors,
	}
}

// NewNoModeSelectedError reports a request without any recognised parameter.
func NewNoModeSelectedError() *HTTPError {
	return &HTTPError{
		Code:     CodeNoModeSelected,
		Message:  "Bad request no parameters given!",
		Status:   ClientErrorStatus,
		Override: true,
	}
}

// NewQueryExecutionError wraps a store failure. The message is exposed to the
// client prefixed with "Bad request: ".
func NewQueryExecutionError(message string, cause error) *HTTPError {
	return &HTTPError{
		Code:     CodeQueryExecution,
		Message:  "Bad request: " + message,
		Status:   ClientErrorStatus,
		Override: false,
		cause:    cause,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError, used for unknown routes.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewTooManyRequestsError is returned by the rate limiter.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: http.StatusText(http.StatusTooManyRequests),
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a generic 500. The message is the status
// text, never the internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
