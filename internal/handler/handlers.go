// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"github.com/deppfellow/flightdelays/internal/server"
	"github.com/deppfellow/flightdelays/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Flights *FlightHandler  // Flights serves the dispatch endpoint, GET /.
	Health  *HealthHandler  // Health reports whether the flight store is reachable.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API documentation UI.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Flights: NewFlightHandler(s, services.Flights),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
