// Package dbtest builds small, fully known flight stores for tests.
//
// The fixture is written to a SQLite file in a temp dir with a writable
// handle, then reopened through database.Open exactly like production
// (read-only, scoped connections).
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/flightdelays/internal/config"
	"github.com/deppfellow/flightdelays/internal/database"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Schema mirrors the columns of the flights dataset the service reads.
const Schema = `
CREATE TABLE airlines (
	id      TEXT PRIMARY KEY,
	airline TEXT NOT NULL
);
CREATE TABLE airports (
	iata_code TEXT PRIMARY KEY,
	airport   TEXT,
	city      TEXT,
	state     TEXT,
	country   TEXT,
	latitude  REAL,
	longitude REAL
);
CREATE TABLE flights (
	id                  INTEGER PRIMARY KEY,
	year                INTEGER,
	month               INTEGER,
	day                 INTEGER,
	day_of_week         INTEGER,
	airline             TEXT,
	flight_number       INTEGER,
	tail_number         TEXT,
	origin_airport      TEXT,
	destination_airport TEXT,
	scheduled_departure INTEGER,
	departure_delay     INTEGER,
	arrival_delay       INTEGER
);
`

// Fixture rows. Spirit has no flights and SFO -> ZZZ has an unknown
// destination; both must drop out of the aggregates.
const Seed = `
INSERT INTO airlines (id, airline) VALUES
	('AA', 'American Airlines Inc.'),
	('DL', 'Delta Air Lines Inc.'),
	('UA', 'United Air Lines Inc.'),
	('NK', 'Spirit Air Lines');

INSERT INTO airports (iata_code, airport, city, state, country, latitude, longitude) VALUES
	('LAX', 'Los Angeles International Airport', 'Los Angeles', 'CA', 'USA', 33.94254, -118.40807),
	('JFK', 'John F. Kennedy International Airport', 'New York', 'NY', 'USA', 40.63975, -73.77893),
	('SFO', 'San Francisco International Airport', 'San Francisco', 'CA', 'USA', 37.619, -122.37484);

INSERT INTO flights (id, year, month, day, day_of_week, airline, flight_number, tail_number,
	origin_airport, destination_airport, scheduled_departure, departure_delay, arrival_delay) VALUES
	(1, 2015, 1, 1, 4, 'AA',   98, 'N407AS', 'LAX', 'JFK',    5,   25,   30),
	(2, 2015, 1, 1, 4, 'DL', 2336, 'N3KUAA', 'LAX', 'SFO',   10,   -5,   -3),
	(3, 2015, 1, 1, 4, 'UA',  840, 'N171US', 'SFO', 'LAX', 1230,   45,   40),
	(4, 2015, 1, 2, 5, 'AA',  258, 'N3HYAA', 'JFK', 'LAX', 1245,    0,    5),
	(5, 2015, 1, 2, 5, 'DL',  135, 'N527AS', 'LAX', 'JFK', 1300,   21,   10),
	(6, 2015, 2, 1, 7, 'UA',  806, 'N3DAAA', 'SFO', 'ZZZ', 2359,   20,   15),
	(7, 2015, 2, 1, 7, 'AA',  612, 'N635NK', 'JFK', 'LAX', 1245, NULL, NULL);
`

// Unlocated adds an airport without coordinates and one delayed flight
// from it. Apply it after Schema and Seed.
const Unlocated = `
INSERT INTO airports (iata_code, airport, city, state, country, latitude, longitude) VALUES
	('ECP', 'Northwest Florida Beaches International Airport', 'Panama City', 'FL', 'USA', NULL, NULL);

INSERT INTO flights (id, year, month, day, day_of_week, airline, flight_number, tail_number,
	origin_airport, destination_airport, scheduled_departure, departure_delay, arrival_delay) VALUES
	(8, 2015, 3, 1, 7, 'DL', 1402, 'N917DL', 'ECP', 'JFK', 900, 35, 28);
`

// NewStoreFile writes the fixture (or any extra statements) to a fresh
// SQLite file and returns its path.
func NewStoreFile(t testing.TB, statements ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "flights.sqlite3")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	if len(statements) == 0 {
		statements = []string{Schema, Seed}
	}
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return path
}

// Config returns an application config pointing at the SQLite file.
func Config(path string) *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			URI:             "sqlite://" + path,
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 60,
			ConnMaxIdleTime: 60,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}

// Open seeds a store (see NewStoreFile) and opens it through
// database.Open. The handle is closed when the test ends.
func Open(t testing.TB, statements ...string) *database.Database {
	t.Helper()

	cfg := Config(NewStoreFile(t, statements...))
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)

	db, err := database.Open(context.Background(), cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}
