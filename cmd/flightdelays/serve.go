package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/flightdelays/internal/config"
	"github.com/deppfellow/flightdelays/internal/handler"
	"github.com/deppfellow/flightdelays/internal/logger"
	"github.com/deppfellow/flightdelays/internal/repository"
	"github.com/deppfellow/flightdelays/internal/router"
	"github.com/deppfellow/flightdelays/internal/server"
	"github.com/deppfellow/flightdelays/internal/service"
	"github.com/spf13/cobra"
)

// DefaultShutdownTimeout bounds how long in-flight requests may run after
// SIGINT/SIGTERM.
const DefaultShutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET / and the system endpoints over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), shutdownTimeout)
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", DefaultShutdownTimeout, "grace period for in-flight requests on shutdown")

	return cmd
}

func runServe(ctx context.Context, shutdownTimeout time.Duration) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		_ = srv.Shutdown(context.Background())
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
		if shutdownErr := srv.Shutdown(context.Background()); shutdownErr != nil {
			err = errors.Join(err, shutdownErr)
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
