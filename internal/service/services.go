package service

import (
	"github.com/deppfellow/flightdelays/internal/repository"
	"github.com/deppfellow/flightdelays/internal/server"
)

type Services struct {
	Flights *FlightService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Flights: NewFlightService(repos.Flights),
	}, nil
}
