package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flightdelays",
		Short: "Query flights and delay statistics from a read-only flight store",
		Long: `flightdelays answers questions about a pre-populated flights,
airlines and airports store: single flights, flights per day, delayed
flights per airline or airport, and delay percentages per airline,
departure hour and route.

Configuration comes from FLIGHTDELAYS_* environment variables and an
optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd(), newQueryCmd())

	return rootCmd
}
