package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ErrInconsistentData is returned by validate when stored cells disagree with the schema
var ErrInconsistentData = goerr.New("DB consistency check found issues")

func cmdValidate() *cli.Command {
	var g grid

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the field schema and check stored cells against it",
		Flags:   g.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate the schema, then open the repository
			uc, closeRepo, err := g.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			defer closeRepo()

			logger.Info("Configuration validation passed",
				"field_count", len(uc.Schema().Fields),
			)
			for _, fd := range uc.Schema().Fields {
				logger.Info("Field validated",
					"id", fd.ID,
					"name", fd.Name,
					"type", fd.Type,
					"option_count", len(fd.Options),
				)
			}

			// Step 2: Check stored cells
			result, err := uc.ValidateDB(ctx)
			if err != nil {
				return goerr.Wrap(err, "DB consistency check failed")
			}

			if result.HasIssues() {
				for _, issue := range result.Issues {
					logger.Warn("DB consistency issue found",
						"row_id", issue.RowID,
						"field_id", issue.FieldID,
						"message", issue.Message,
						"actual", issue.Actual,
					)
				}

				return goerr.Wrap(ErrInconsistentData, "validation failed",
					goerr.V("issue_count", len(result.Issues)))
			}

			logger.Info("DB consistency check passed")
			return nil
		},
	}
}
