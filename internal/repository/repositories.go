package repository

import (
	"github.com/deppfellow/flightdelays/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Flights *FlightRepository
}

// NewRepositories constructs the repository container from the shared
// server dependencies.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Flights: NewFlightRepository(s.DB, s.Logger, s.Config.Observability.Logging.SlowQueryThreshold),
	}
}
