// Package database owns the connection factory for the flight store.
//
// The store is handed to us pre-populated and is only ever read.
// Two backends are supported, selected by the URI scheme:
//   - sqlite://path/to/flights.sqlite3 (embedded, modernc driver, opened read-only)
//   - postgres://... (pgx through database/sql, read-only sessions)
//
// It handles:
//   - parsing the URI and building a driver DSN
//   - wiring query tracing/logging (pgx tracelog) and New Relic (nrpgx5)
//   - pool limits, a startup ping, and an explicit Close
//   - handing out one scoped connection per query (WithConn)
package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/deppfellow/flightdelays/internal/config"
	loggerConfig "github.com/deppfellow/flightdelays/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const (
	// DriverSQLite is the database/sql name registered by modernc.org/sqlite.
	DriverSQLite = "sqlite"

	// DriverPgx is the database/sql name registered by pgx/v5/stdlib.
	DriverPgx = "pgx"
)

// DatabasePingTimeout is how long Open waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Database wraps the shared connection factory.
//
// DB is safe for concurrent use. Queries should go through WithConn so each
// call holds exactly one connection for its own duration.
type Database struct {
	DB     *sqlx.DB
	Driver string

	log       *zerolog.Logger
	closeOnce sync.Once
	closeErr  error
}

// multiTracer chains several pgx query tracers, since pgx only has a single
// Tracer slot in ConnConfig.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

// source is a parsed store URI.
type source struct {
	driver string
	dsn    string
}

// parseURI maps a store URI onto a database/sql driver name and DSN.
func parseURI(uri string) (source, error) {
	switch {
	case strings.HasPrefix(uri, "sqlite://"):
		return sqliteSource(strings.TrimPrefix(uri, "sqlite://"))
	case strings.HasPrefix(uri, "sqlite:"):
		return sqliteSource(strings.TrimPrefix(uri, "sqlite:"))
	case strings.HasPrefix(uri, "file:"):
		return sqliteSource(strings.TrimPrefix(uri, "file:"))
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return source{driver: DriverPgx, dsn: uri}, nil
	}
	return source{}, fmt.Errorf("unsupported database uri %q (want sqlite:// or postgres://)", uri)
}

// sqliteSource builds a read-only SQLite URI filename. The "file:" prefix
// makes modernc hand the query string to SQLite, which honours mode=ro.
func sqliteSource(path string) (source, error) {
	path, rawQuery, _ := strings.Cut(path, "?")
	if path == "" {
		return source{}, fmt.Errorf("sqlite uri has no file path")
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return source{}, fmt.Errorf("invalid sqlite uri parameters: %w", err)
	}
	query.Set("mode", "ro")
	if query.Get("_pragma") == "" {
		query.Set("_pragma", "busy_timeout(5000)")
	}

	return source{driver: DriverSQLite, dsn: "file:" + path + "?" + query.Encode()}, nil
}

// Open creates the connection factory for cfg.Database.URI and pings it.
//
// For PostgreSQL the New Relic tracer is attached when APM is running, and in
// the "local" environment every statement is also logged through pgx tracelog.
func Open(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	src, err := parseURI(cfg.Database.URI)
	if err != nil {
		return nil, err
	}

	var db *sqlx.DB
	switch src.driver {
	case DriverPgx:
		db, err = openPostgres(src.dsn, cfg, logger, loggerService)
	default:
		db, err = sqlx.Open(src.driver, src.dsn)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)

	database := &Database{
		DB:     db,
		Driver: src.driver,
		log:    logger,
	}

	pingCtx, cancel := context.WithTimeout(ctx, DatabasePingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	logger.Info().Str("driver", src.driver).Msg("connected to the flight store")

	return database, nil
}

func openPostgres(dsn string, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*sqlx.DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse pgx config")
	}

	// Every session is read-only; the service never writes.
	if connConfig.RuntimeParams == nil {
		connConfig.RuntimeParams = map[string]string{}
	}
	connConfig.RuntimeParams["default_transaction_read_only"] = "on"

	var tracers []pgx.QueryTracer
	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		connConfig.Tracer = tracers[0]
	default:
		connConfig.Tracer = &multiTracer{tracers: tracers}
	}

	return sqlx.NewDb(stdlib.OpenDB(*connConfig), DriverPgx), nil
}

// WithConn runs fn on a connection taken from the pool and always returns
// the connection afterwards, whether fn succeeds, fails or panics.
func (db *Database) WithConn(ctx context.Context, fn func(conn *sqlx.Conn) error) (err error) {
	conn, err := db.DB.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to acquire connection")
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "failed to release connection")
		}
	}()

	return fn(conn)
}

// Ping verifies the store is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close releases the connection factory. It is safe to call more than once.
func (db *Database) Close() error {
	db.closeOnce.Do(func() {
		db.log.Info().Msg("closing flight store connections")
		db.closeErr = db.DB.Close()
	})
	return db.closeErr
}
