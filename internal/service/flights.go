package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/flightdelays/internal/errs"
	"github.com/deppfellow/flightdelays/internal/repository"
	"github.com/deppfellow/flightdelays/internal/sqlerr"
)

// FlightStore is the set of predefined queries the dispatcher can reach.
// *repository.FlightRepository implements it.
type FlightStore interface {
	GetFlightByID(ctx context.Context, flightID int64) ([]repository.Flight, error)
	GetFlightsByDate(ctx context.Context, day, month, year int) ([]repository.Flight, error)
	GetDelayedFlightsByAirline(ctx context.Context, airline string) ([]repository.Flight, error)
	GetDelayedFlightsByAirport(ctx context.Context, airport string) ([]repository.Flight, error)
	GetDelayedFlightsByAirlines(ctx context.Context) ([]repository.AirlineDelay, error)
	GetDelayedFlightsByHours(ctx context.Context) ([]repository.HourDelay, error)
	GetDelayedRoutes(ctx context.Context) ([]repository.RouteDelay, error)
	GetDelayedRoutesWithLonLat(ctx context.Context) ([]repository.RouteLocationDelay, error)
}

// Selection is the outcome of Resolve: the chosen mode with its
// parameter already coerced.
type Selection struct {
	Mode  string
	Param string
	Value string

	query Query
}

// Resolve walks the dispatch table and validates the first matching
// parameter. It never touches the store.
func Resolve(params Params) (*Selection, error) {
	for _, mode := range modes {
		if !mode.Matches(params) {
			continue
		}

		value := params.Get(mode.Param)
		query, err := mode.validate(value)
		if err != nil {
			return nil, err
		}

		return &Selection{
			Mode:  mode.Name,
			Param: mode.Param,
			Value: value,
			query: query,
		}, nil
	}

	return nil, errs.NewNoModeSelectedError()
}

// FlightService dispatches requests to the flight store.
type FlightService struct {
	store FlightStore
}

func NewFlightService(store FlightStore) *FlightService {
	return &FlightService{store: store}
}

// Run executes a resolved selection. Store failures, and panics raised
// while querying, come back as QUERY_EXECUTION errors.
func (s *FlightService) Run(ctx context.Context, sel *Selection) (result any, err error) {
	if sel == nil || sel.query == nil {
		return nil, errs.NewNoModeSelectedError()
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errs.NewQueryExecutionError(fmt.Sprint(r), nil)
		}
	}()

	result, err = sel.query(ctx, s.store)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return result, nil
}

// Dispatch is Resolve followed by Run.
func (s *FlightService) Dispatch(ctx context.Context, params Params) (any, error) {
	sel, err := Resolve(params)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, sel)
}
