package handler

import (
	"net/http"

	"github.com/deppfellow/flightdelays/internal/server"
	"github.com/deppfellow/flightdelays/internal/service"
	"github.com/labstack/echo/v4"
)

// FlightQueryRequest carries the query-string parameters of GET /:
// id, date, airport, airline, all_airlines, hourly_delays, delays_routes
// and routes_with_location. At most one of them is used; see service.Modes
// for the order.
type FlightQueryRequest struct {
	params    service.Params
	selection *service.Selection
}

// NewFlightQueryRequest captures the recognised parameters of c.
func NewFlightQueryRequest(c echo.Context) *FlightQueryRequest {
	return &FlightQueryRequest{params: service.ParamsFromValues(c.QueryParams())}
}

// Validate selects the dispatch mode and coerces its parameter.
func (r *FlightQueryRequest) Validate() error {
	sel, err := service.Resolve(r.params)
	if err != nil {
		return err
	}
	r.selection = sel
	return nil
}

// DispatchMode reports the selected mode once Validate has succeeded.
func (r *FlightQueryRequest) DispatchMode() string {
	if r.selection == nil {
		return ""
	}
	return r.selection.Mode
}

// FlightHandler serves GET /, the flight delay query endpoint.
type FlightHandler struct {
	Handler
	flights *service.FlightService
}

// NewFlightHandler wires the endpoint to the flight service.
func NewFlightHandler(s *server.Server, flights *service.FlightService) *FlightHandler {
	return &FlightHandler{
		Handler: NewHandler(s),
		flights: flights,
	}
}

// GetData runs the selected query and returns its records.
func (h *FlightHandler) GetData(c echo.Context, req *FlightQueryRequest) (any, error) {
	return h.flights.Run(c.Request().Context(), req.selection)
}

// Route returns the echo handler for GET /.
func (h *FlightHandler) Route() echo.HandlerFunc {
	return Handle[*FlightQueryRequest, any](h.Handler, h.GetData, http.StatusOK, NewFlightQueryRequest)
}
