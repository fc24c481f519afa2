package config_test

import (
	"context"

	"github.com/urfave/cli/v3"
)

// newTestCommand builds a command that parses flags and runs fn
func newTestCommand(flags []cli.Flag, fn func()) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			fn()
			return nil
		},
	}
}
