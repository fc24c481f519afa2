package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentry holds CLI flags for error reporting
type Sentry struct {
	dsn string
	env string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Category:    "Sentry",
			Usage:       "Sentry DSN. Error reporting is disabled when empty",
			Sources:     cli.EnvVars("GRIDCELL_SENTRY_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Category:    "Sentry",
			Usage:       "Sentry environment",
			Sources:     cli.EnvVars("GRIDCELL_SENTRY_ENV"),
			Destination: &s.env,
		},
	}
}

// LogValue implements slog.LogValuer; the DSN is never logged
func (s Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", s.dsn != ""),
		slog.String("env", s.env),
	)
}

// Configure initializes the Sentry client. The returned function flushes
// pending events and is safe to call when Sentry is disabled.
func (s *Sentry) Configure() (func(), error) {
	if s.dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.dsn,
		Environment: s.env,
	}); err != nil {
		return func() {}, goerr.Wrap(err, "failed to initialize sentry")
	}

	logging.Default().Info("Sentry error reporting enabled", "sentry", s)
	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
