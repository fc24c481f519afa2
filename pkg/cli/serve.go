package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	httpctrl "github.com/secmon-lab/gridcell/pkg/controller/http"
	"github.com/secmon-lab/gridcell/pkg/service/worker"
	"github.com/secmon-lab/gridcell/pkg/usecase"
	"github.com/secmon-lab/gridcell/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var enableMetrics bool
	var filterConcurrency int64
	var consistencyInterval time.Duration
	var g grid

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("GRIDCELL_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics on /metrics",
			Value:       true,
			Sources:     cli.EnvVars("GRIDCELL_METRICS"),
			Destination: &enableMetrics,
		},
		&cli.Int64Flag{
			Name:        "filter-concurrency",
			Usage:       "Number of fields loaded in parallel when filtering rows",
			Value:       8,
			Sources:     cli.EnvVars("GRIDCELL_FILTER_CONCURRENCY"),
			Destination: &filterConcurrency,
		},
		&cli.DurationFlag{
			Name:        "consistency-check-interval",
			Usage:       "Interval of the background cell consistency check. 0 disables it",
			Value:       0,
			Sources:     cli.EnvVars("GRIDCELL_CONSISTENCY_CHECK_INTERVAL"),
			Destination: &consistencyInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, g.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := g.Configure(ctx, usecase.WithFilterConcurrency(int(filterConcurrency)))
			if err != nil {
				return err
			}
			defer closeRepo()

			var consistencyWorker *worker.ConsistencyWorker
			if consistencyInterval > 0 {
				consistencyWorker = worker.NewConsistencyWorker(uc, consistencyInterval)
				if err := consistencyWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start consistency worker")
				}
			}

			httpHandler := httpctrl.New(uc.Grid,
				httpctrl.WithSchema(uc.Schema()),
				httpctrl.WithMetrics(enableMetrics),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"fields", len(uc.Schema().Fields),
					"metrics", enableMetrics,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logging.Default().Info("Context canceled, shutting down")
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			}

			// Stop consistency worker first
			if consistencyWorker != nil {
				consistencyWorker.Stop()
			}

			// Create shutdown context with timeout
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			// Attempt graceful shutdown
			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
