package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/flightdelays/internal/database/dbtest"
	"github.com/deppfellow/flightdelays/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, statements ...string) *repository.FlightRepository {
	t.Helper()
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	return repository.NewFlightRepository(dbtest.Open(t, statements...), &logger, time.Second)
}

func flightIDs(flights []repository.Flight) []int64 {
	ids := make([]int64, 0, len(flights))
	for _, f := range flights {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestGetFlightByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	flights, err := repo.GetFlightByID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, flights, 1)

	f := flights[0]
	assert.Equal(t, int64(1), f.ID)
	assert.Equal(t, int64(98), f.FlightNumber)
	assert.Equal(t, 2015, f.Year)
	assert.Equal(t, 1, f.Month)
	assert.Equal(t, 1, f.Day)
	assert.Equal(t, "LAX", f.OriginAirport)
	assert.Equal(t, "JFK", f.DestinationAirport)
	assert.Equal(t, "American Airlines Inc.", f.Airline)
	assert.Equal(t, 5, f.ScheduledDeparture)
	require.NotNil(t, f.Delay)
	assert.Equal(t, int64(25), *f.Delay)

	t.Run("cancelled flight has no delay", func(t *testing.T) {
		flights, err := repo.GetFlightByID(ctx, 7)
		require.NoError(t, err)
		require.Len(t, flights, 1)
		assert.Nil(t, flights[0].Delay)
	})

	t.Run("unknown id is empty, not nil", func(t *testing.T) {
		flights, err := repo.GetFlightByID(ctx, 999)
		require.NoError(t, err)
		assert.NotNil(t, flights)
		assert.Empty(t, flights)
	})
}

func TestGetFlightsByDate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first, err := repo.GetFlightsByDate(ctx, 1, 1, 2015)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, flightIDs(first))

	second, err := repo.GetFlightsByDate(ctx, 2, 1, 2015)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, flightIDs(second))

	for _, f := range first {
		assert.NotContains(t, flightIDs(second), f.ID, "distinct dates must not share flights")
	}

	none, err := repo.GetFlightsByDate(ctx, 3, 3, 2015)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetDelayedFlightsByAirline(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		airline string
		want    []int64
	}{
		{name: "exact name", airline: "Delta Air Lines Inc.", want: []int64{5}},
		{name: "lower case", airline: "delta air lines inc.", want: []int64{5}},
		{name: "threshold is exclusive", airline: "United Air Lines Inc.", want: []int64{3}},
		{name: "airline without flights", airline: "Spirit Air Lines", want: []int64{}},
		{name: "unknown airline", airline: "Oceanic", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flights, err := repo.GetDelayedFlightsByAirline(ctx, tt.airline)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flightIDs(flights))
			for _, f := range flights {
				require.NotNil(t, f.Delay)
				assert.Greater(t, *f.Delay, int64(repository.DelayThreshold))
			}
		})
	}
}

func TestGetDelayedFlightsByAirport(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	tests := []struct {
		airport string
		want    []int64
	}{
		{airport: "LAX", want: []int64{1, 5}},
		{airport: "SFO", want: []int64{3}},
		{airport: "JFK", want: []int64{}},
		{airport: "ZZZ", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.airport, func(t *testing.T) {
			flights, err := repo.GetDelayedFlightsByAirport(ctx, tt.airport)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flightIDs(flights))
			for _, f := range flights {
				assert.Equal(t, tt.airport, f.OriginAirport)
			}
		})
	}
}

func TestGetDelayedFlightsByAirlines(t *testing.T) {
	repo := newRepo(t)

	rows, err := repo.GetDelayedFlightsByAirlines(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "American Airlines Inc.", rows[0].Airline)
	assert.InDelta(t, 100.0/3, rows[0].DelayPercentage, 1e-9)
	assert.Equal(t, "Delta Air Lines Inc.", rows[1].Airline)
	assert.InDelta(t, 50.0, rows[1].DelayPercentage, 1e-9)
	assert.Equal(t, "United Air Lines Inc.", rows[2].Airline)
	assert.InDelta(t, 50.0, rows[2].DelayPercentage, 1e-9)
}

func TestGetDelayedFlightsByHours(t *testing.T) {
	repo := newRepo(t)

	rows, err := repo.GetDelayedFlightsByHours(context.Background())
	require.NoError(t, err)

	want := []repository.HourDelay{
		{Hour: 0, DelayPercentage: 50},
		{Hour: 12, DelayPercentage: 100.0 / 3},
		{Hour: 13, DelayPercentage: 100},
		{Hour: 23, DelayPercentage: 0},
	}
	require.Len(t, rows, len(want))
	for i, w := range want {
		assert.Equal(t, w.Hour, rows[i].Hour)
		assert.InDelta(t, w.DelayPercentage, rows[i].DelayPercentage, 1e-9)
	}
}

func TestGetDelayedRoutes(t *testing.T) {
	repo := newRepo(t)

	rows, err := repo.GetDelayedRoutes(context.Background())
	require.NoError(t, err)

	want := []repository.RouteDelay{
		{Origin: "JFK", Destination: "LAX", FlightRoute: "JFK → LAX", DelayPercentage: 0},
		{Origin: "LAX", Destination: "JFK", FlightRoute: "LAX → JFK", DelayPercentage: 100},
		{Origin: "LAX", Destination: "SFO", FlightRoute: "LAX → SFO", DelayPercentage: 0},
		{Origin: "SFO", Destination: "LAX", FlightRoute: "SFO → LAX", DelayPercentage: 100},
		{Origin: "SFO", Destination: "ZZZ", FlightRoute: "SFO → ZZZ", DelayPercentage: 0},
	}
	assert.Equal(t, want, rows)
}

func TestGetDelayedRoutesWithLonLat(t *testing.T) {
	repo := newRepo(t)

	rows, err := repo.GetDelayedRoutesWithLonLat(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4, "routes to unknown airports are dropped")

	byRoute := map[string]repository.RouteLocationDelay{}
	for _, r := range rows {
		byRoute[r.FlightRoute] = r
		assert.GreaterOrEqual(t, r.DelayPercentage, 0.0)
		assert.LessOrEqual(t, r.DelayPercentage, 100.0)
	}
	assert.NotContains(t, byRoute, "SFO → ZZZ")

	lax := byRoute["LAX → JFK"]
	assert.InDelta(t, 100.0, lax.DelayPercentage, 1e-9)
	require.NotNil(t, lax.OriginLat)
	require.NotNil(t, lax.OriginLon)
	require.NotNil(t, lax.DestinationLat)
	require.NotNil(t, lax.DestinationLon)
	assert.InDelta(t, 33.94254, *lax.OriginLat, 1e-9)
	assert.InDelta(t, -118.40807, *lax.OriginLon, 1e-9)
	assert.InDelta(t, 40.63975, *lax.DestinationLat, 1e-9)
	assert.InDelta(t, -73.77893, *lax.DestinationLon, 1e-9)
}

func TestGetDelayedRoutesWithLonLat_AirportWithoutCoordinates(t *testing.T) {
	repo := newRepo(t, dbtest.Schema, dbtest.Seed, dbtest.Unlocated)

	rows, err := repo.GetDelayedRoutesWithLonLat(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 5)

	var ecp *repository.RouteLocationDelay
	for i := range rows {
		if rows[i].FlightRoute == "ECP → JFK" {
			ecp = &rows[i]
		}
	}
	require.NotNil(t, ecp, "known airport without coordinates keeps its route")
	assert.InDelta(t, 100.0, ecp.DelayPercentage, 1e-9)
	assert.Nil(t, ecp.OriginLat)
	assert.Nil(t, ecp.OriginLon)
	require.NotNil(t, ecp.DestinationLat)
	assert.InDelta(t, 40.63975, *ecp.DestinationLat, 1e-9)
}

func TestQueryErrorsPropagate(t *testing.T) {
	repo := newRepo(t, "CREATE TABLE unrelated (id INTEGER)")
	ctx := context.Background()

	_, err := repo.GetFlightByID(ctx, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get_flight_by_id")
	assert.Contains(t, err.Error(), "no such table")

	_, err = repo.GetDelayedRoutes(ctx)
	require.Error(t, err)
}

func TestCanceledContext(t *testing.T) {
	repo := newRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flights, err := repo.GetFlightByID(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, flights)
}
