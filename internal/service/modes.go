package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/flightdelays/internal/errs"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the day/month/year format of the date parameter.
const DateLayout = "2/1/2006"

var validate = validator.New()

// Query is a validated request, ready to run against a FlightStore.
type Query func(ctx context.Context, store FlightStore) (any, error)

// Mode is one entry of the dispatch table.
//
// A mode matches when its parameter is non-empty; validate turns the raw
// value into a Query or fails with a PARAMETER_FORMAT error.
type Mode struct {
	Name     string
	Param    string
	validate func(value string) (Query, error)
}

// Matches reports whether params selects this mode.
func (m Mode) Matches(params Params) bool {
	return params.Get(m.Param) != ""
}

// newMode ties a typed coercion step to the repository call it feeds.
func newMode[A any](
	name, param string,
	coerce func(value string) (A, error),
	run func(ctx context.Context, store FlightStore, arg A) (any, error),
) Mode {
	return Mode{
		Name:  name,
		Param: param,
		validate: func(value string) (Query, error) {
			arg, err := coerce(value)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context, store FlightStore) (any, error) {
				return run(ctx, store, arg)
			}, nil
		},
	}
}

// modes is evaluated in order; the first match wins.
var modes = []Mode{
	newMode("get_flight_by_id", ParamID, parseFlightID,
		func(ctx context.Context, store FlightStore, id int64) (any, error) {
			return store.GetFlightByID(ctx, id)
		}),
	newMode("get_flights_by_date", ParamDate, parseDate,
		func(ctx context.Context, store FlightStore, date time.Time) (any, error) {
			return store.GetFlightsByDate(ctx, date.Day(), int(date.Month()), date.Year())
		}),
	newMode("get_delayed_flights_by_airport", ParamAirport, parseAirport,
		func(ctx context.Context, store FlightStore, airport string) (any, error) {
			return store.GetDelayedFlightsByAirport(ctx, airport)
		}),
	newMode("get_delayed_flights_by_airline", ParamAirline, parseAirline,
		func(ctx context.Context, store FlightStore, airline string) (any, error) {
			return store.GetDelayedFlightsByAirline(ctx, airline)
		}),
	newMode("get_delayed_flights_by_airlines", ParamAllAirlines, flag("Bad request for delays by airline!"),
		func(ctx context.Context, store FlightStore, _ bool) (any, error) {
			return store.GetDelayedFlightsByAirlines(ctx)
		}),
	newMode("get_delayed_flights_by_hours", ParamHourlyDelays, flag("Bad request for delays by hour!"),
		func(ctx context.Context, store FlightStore, _ bool) (any, error) {
			return store.GetDelayedFlightsByHours(ctx)
		}),
	newMode("get_delayed_routes", ParamDelaysRoutes, flag("Bad request for delays by route!"),
		func(ctx context.Context, store FlightStore, _ bool) (any, error) {
			return store.GetDelayedRoutes(ctx)
		}),
	newMode("get_delayed_routes_with_lon_lat", ParamRoutesWithLocation, flag("Bad request for delays by route with location!"),
		func(ctx context.Context, store FlightStore, _ bool) (any, error) {
			return store.GetDelayedRoutesWithLonLat(ctx)
		}),
}

// Modes returns a copy of the dispatch table in precedence order.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

func parseFlightID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errs.NewParameterFormatError("Bad request: "+err.Error(), errs.FieldError{
			Field: ParamID,
			Error: "must be an integer",
		})
	}
	return id, nil
}

// parseDate accepts real calendar dates only: 31/02/2015 is rejected.
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errs.NewParameterFormatError("Bad request: "+err.Error(), errs.FieldError{
			Field: ParamDate,
			Error: "must be a DD/MM/YYYY date",
		})
	}
	return date, nil
}

// parseAirport checks the IATA shape only, not that the airport exists.
func parseAirport(value string) (string, error) {
	if err := validate.Var(value, "alpha,len=3"); err != nil {
		return "", errs.NewParameterFormatError("Bad Request for airport!", errs.FieldError{
			Field: ParamAirport,
			Error: "must be 3 letters",
		})
	}
	return strings.ToUpper(value), nil
}

func parseAirline(value string) (string, error) {
	return value, nil
}

// flag builds a coercion that only accepts a case-insensitive "true".
func flag(message string) func(value string) (bool, error) {
	return func(value string) (bool, error) {
		if !strings.EqualFold(value, "true") {
			return false, errs.NewParameterFormatError(message)
		}
		return true, nil
	}
}
