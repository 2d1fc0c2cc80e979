package validation

import (
	"errors"
	"fmt"

	"github.com/deppfellow/flightdelays/internal/errs"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate either returns an *errs.HTTPError that already carries the client
// message, or a plain error that is reported as a parameter format failure.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the request struct from path and query params.
// 2) payload.Validate() applies validation rules.
// 3) Returns a PARAMETER_FORMAT *errs.HTTPError if either step fails. An
// *errs.HTTPError returned by Validate is passed through untouched.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewParameterFormatError("Bad request: " + bindMessage(err))
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return errs.NewParameterFormatError("Bad request: " + err.Error())
	}

	return nil
}

// bindMessage pulls the human part out of an echo bind error.
func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
