package repository

import (
	"context"
	"time"

	"github.com/deppfellow/flightdelays/internal/database"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "flightdelays_repository_query_duration_seconds",
	Help:    "Time to run one flight store query, including connection acquisition",
	Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
}, []string{"operation", "status"})

// FlightRepository runs the predefined flight queries.
//
// It never catches query failures: every error is returned to the caller,
// wrapped with the operation name.
type FlightRepository struct {
	db        *database.Database
	logger    *zerolog.Logger
	slowQuery time.Duration
}

// NewFlightRepository builds a repository on top of db. Queries slower than
// slowQuery are logged at warn level; zero disables that.
func NewFlightRepository(db *database.Database, logger *zerolog.Logger, slowQuery time.Duration) *FlightRepository {
	return &FlightRepository{
		db:        db,
		logger:    logger,
		slowQuery: slowQuery,
	}
}

// GetFlightByID returns the flight with the given identifier, or an empty
// slice when there is none.
func (r *FlightRepository) GetFlightByID(ctx context.Context, flightID int64) ([]Flight, error) {
	return selectAll[Flight](ctx, r, "get_flight_by_id", queryFlightByID, map[string]any{
		"id": flightID,
	})
}

// GetFlightsByDate returns the flights scheduled on the given calendar day.
func (r *FlightRepository) GetFlightsByDate(ctx context.Context, day, month, year int) ([]Flight, error) {
	return selectAll[Flight](ctx, r, "get_flights_by_date", queryFlightsByDate, map[string]any{
		"day":   day,
		"month": month,
		"year":  year,
	})
}

// GetDelayedFlightsByAirline returns the delayed flights of the named
// airline. The name is matched case-insensitively.
func (r *FlightRepository) GetDelayedFlightsByAirline(ctx context.Context, airline string) ([]Flight, error) {
	return selectAll[Flight](ctx, r, "get_delayed_flights_by_airline", queryDelayedFlightsByAirline, map[string]any{
		"threshold": DelayThreshold,
		"airline":   airline,
	})
}

// GetDelayedFlightsByAirport returns the delayed flights departing from the
// airport with the given IATA code. Codes are stored upper case.
func (r *FlightRepository) GetDelayedFlightsByAirport(ctx context.Context, airport string) ([]Flight, error) {
	return selectAll[Flight](ctx, r, "get_delayed_flights_by_airport", queryDelayedFlightsByAirport, map[string]any{
		"threshold": DelayThreshold,
		"airport":   airport,
	})
}

// GetDelayedFlightsByAirlines returns the delay percentage of every airline
// that has at least one flight.
func (r *FlightRepository) GetDelayedFlightsByAirlines(ctx context.Context) ([]AirlineDelay, error) {
	return selectAll[AirlineDelay](ctx, r, "get_delayed_flights_by_airlines", queryDelayedFlightsByAirlines, map[string]any{
		"threshold": DelayThreshold,
	})
}

// GetDelayedFlightsByHours returns the delay percentage per scheduled
// departure hour, ascending.
func (r *FlightRepository) GetDelayedFlightsByHours(ctx context.Context) ([]HourDelay, error) {
	return selectAll[HourDelay](ctx, r, "get_delayed_flights_by_hours", queryDelayedFlightsByHours, map[string]any{
		"threshold": DelayThreshold,
	})
}

// GetDelayedRoutes returns the delay percentage per directed route.
func (r *FlightRepository) GetDelayedRoutes(ctx context.Context) ([]RouteDelay, error) {
	return selectAll[RouteDelay](ctx, r, "get_delayed_routes", queryDelayedRoutes, map[string]any{
		"threshold": DelayThreshold,
	})
}

// GetDelayedRoutesWithLonLat is GetDelayedRoutes restricted to routes whose
// both endpoints are known airports, with their coordinates attached.
func (r *FlightRepository) GetDelayedRoutesWithLonLat(ctx context.Context) ([]RouteLocationDelay, error) {
	return selectAll[RouteLocationDelay](ctx, r, "get_delayed_routes_with_lon_lat", queryDelayedRoutesWithLonLat, map[string]any{
		"threshold": DelayThreshold,
	})
}

// selectAll binds the named parameters, runs the statement on one scoped
// connection and scans every row into T. The result is never nil.
func selectAll[T any](ctx context.Context, r *FlightRepository, operation, query string, params map[string]any) ([]T, error) {
	start := time.Now()

	records := []T{}
	err := r.db.WithConn(ctx, func(conn *sqlx.Conn) error {
		bound, args, err := sqlx.Named(query, params)
		if err != nil {
			return errors.Wrap(err, "failed to bind query parameters")
		}
		return conn.SelectContext(ctx, &records, r.db.DB.Rebind(bound), args...)
	})

	r.observe(operation, time.Since(start), len(records), err)

	if err != nil {
		return nil, errors.Wrap(err, operation)
	}
	return records, nil
}

func (r *FlightRepository) observe(operation string, elapsed time.Duration, rows int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	queryDuration.WithLabelValues(operation, status).Observe(elapsed.Seconds())

	if r.logger == nil {
		return
	}

	switch {
	case err != nil:
		r.logger.Debug().
			Err(err).
			Str("operation", operation).
			Dur("duration", elapsed).
			Msg("query failed")
	case r.slowQuery > 0 && elapsed > r.slowQuery:
		r.logger.Warn().
			Str("operation", operation).
			Int("rows", rows).
			Dur("duration", elapsed).
			Dur("threshold", r.slowQuery).
			Msg("slow query")
	default:
		r.logger.Debug().
			Str("operation", operation).
			Int("rows", rows).
			Dur("duration", elapsed).
			Msg("query completed")
	}
}
