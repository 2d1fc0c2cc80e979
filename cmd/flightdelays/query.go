package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/deppfellow/flightdelays/internal/config"
	"github.com/deppfellow/flightdelays/internal/database"
	"github.com/deppfellow/flightdelays/internal/errs"
	"github.com/deppfellow/flightdelays/internal/lib/utils"
	"github.com/deppfellow/flightdelays/internal/logger"
	"github.com/deppfellow/flightdelays/internal/repository"
	"github.com/deppfellow/flightdelays/internal/service"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var (
		databaseURI string
		values      = map[string]*string{}
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one query and print its records as JSON",
		Long: `query selects a mode with the same parameters and precedence as
GET /, runs it once against the flight store and prints the JSON records
on stdout. Failures print ["error", "<message>"] and exit with status 1.`,
		Example: `  flightdelays query --date 01/01/2015
  flightdelays query --hourly-delays true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			for name, value := range values {
				query.Set(name, *value)
			}
			return runQuery(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), databaseURI, service.ParamsFromValues(query))
		},
	}

	flagUsage := map[string]string{
		service.ParamID:                 "flight identifier",
		service.ParamDate:               "scheduled date, DD/MM/YYYY",
		service.ParamAirport:            "3-letter IATA origin code",
		service.ParamAirline:            "airline name, case-insensitive",
		service.ParamAllAirlines:        `"true" for the delay percentage per airline`,
		service.ParamHourlyDelays:       `"true" for the delay percentage per departure hour`,
		service.ParamDelaysRoutes:       `"true" for the delay percentage per route`,
		service.ParamRoutesWithLocation: `"true" for the delay percentage per route with coordinates`,
	}
	for _, mode := range service.Modes() {
		value := new(string)
		values[mode.Param] = value
		cmd.Flags().StringVar(value, flagName(mode.Param), "", flagUsage[mode.Param])
	}

	cmd.Flags().StringVar(&databaseURI, "database", "", "store URI, overrides FLIGHTDELAYS_DATABASE__URI")

	return cmd
}

// flagName turns a query parameter into a CLI flag: all_airlines -> all-airlines.
func flagName(param string) string {
	return strings.ReplaceAll(param, "_", "-")
}

func runQuery(ctx context.Context, stdout, stderr io.Writer, databaseURI string, params service.Params) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return writeError(stdout, errs.NewQueryExecutionError(err.Error(), err))
	}
	if databaseURI != "" {
		cfg.Database.URI = databaseURI
	}

	// stdout carries the records, so logs go to stderr.
	log := logger.NewLogger(cfg.Observability).Output(stderr)

	sel, err := service.Resolve(params)
	if err != nil {
		return writeError(stdout, err)
	}

	db, err := database.Open(ctx, cfg, &log, nil)
	if err != nil {
		return writeError(stdout, errs.NewQueryExecutionError(err.Error(), err))
	}
	defer db.Close()

	repo := repository.NewFlightRepository(db, &log, cfg.Observability.Logging.SlowQueryThreshold)
	result, err := service.NewFlightService(repo).Run(ctx, sel)
	if err != nil {
		return writeError(stdout, err)
	}

	return utils.WriteJSON(stdout, result)
}

// writeError prints the ["error", msg] body and returns err so the
// process exits non-zero.
func writeError(w io.Writer, err error) error {
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = errs.NewQueryExecutionError(err.Error(), err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if encErr := enc.Encode(httpErr.Body()); encErr != nil {
		return errors.Join(err, encErr)
	}
	return err
}
