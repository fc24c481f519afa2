package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/cli/config"
	"github.com/secmon-lab/gridcell/pkg/usecase"
	"github.com/secmon-lab/gridcell/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// grid bundles the flags every data command needs
type grid struct {
	schemaCfg config.Schema
	repoCfg   config.Repository
}

func (g *grid) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, g.schemaCfg.Flags()...)
	flags = append(flags, g.repoCfg.Flags()...)
	return flags
}

// Configure loads the schema and opens the repository. The returned function
// closes the repository.
func (g *grid) Configure(ctx context.Context, opts ...usecase.Option) (*usecase.UseCases, func(), error) {
	schema, err := g.schemaCfg.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load field schema")
	}

	repo, err := g.repoCfg.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}
	closer := func() {
		if err := repo.Close(); err != nil {
			logging.Default().Error("failed to close repository", "error", err.Error())
		}
	}

	return usecase.New(repo, schema, opts...), closer, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}
