package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/flightdelays/internal/errs"
	"github.com/deppfellow/flightdelays/internal/middleware"
	"github.com/deppfellow/flightdelays/internal/server"
	"github.com/deppfellow/flightdelays/internal/sqlerr"
	"github.com/deppfellow/flightdelays/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it to reach config, logger and the flight store
// through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler wraps the shared server container.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function that receives a validated
// request payload and returns a response or an error.
//
// Req is typically a POINTER type, e.g. *FlightQueryRequest, because Echo's
// Bind requires a pointer to populate fields.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler defines how a successful result is written and which
// observability attributes it contributes.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// AddAttributes records the number of records returned for list results.
func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn == nil || result == nil {
		return
	}
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		txn.AddAttribute("response.records", v.Len())
	}
}

// modeReporter is implemented by requests that resolve to a dispatch mode
// during validation.
type modeReporter interface {
	DispatchMode() string
}

// handleRequest is the shared execution pipeline for all handlers.
//
// It centralizes:
// - request binding + validation
// - structured logging (with request context)
// - New Relic tracing attributes and error reporting
// - timing (validation duration, handler duration, total duration)
// - response writing
//
// Errors are returned untouched; GlobalErrorHandler renders them.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	if mr, ok := any(req).(modeReporter); ok && mr.DispatchMode() != "" {
		logger = logger.With().Str("mode", mr.DispatchMode()).Logger()
		if txn != nil {
			txn.AddAttribute("flights.mode", mr.DispatchMode())
		}
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		event := logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration)
		storeCode := sqlerr.Other
		if errs.IsKind(err, errs.CodeQueryExecution) {
			storeCode = sqlerr.ErrCode(err)
			event = event.Str("store_error", string(storeCode))
		}
		event.Msg("query failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("store.error", string(storeCode))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("query answered")

	return responseHandler.Handle(c, result)
}

// Handle wraps a handler with validation, error handling, logging, metrics, and tracing
//
// newReq must return a fresh payload for every request; Echo serves
// requests concurrently.
//
//	router.GET("/", handler.Handle(h, myHandlerFn, http.StatusOK, func(echo.Context) *MyReq { return &MyReq{} }))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func(c echo.Context) Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(c), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
