package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdFilter() *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "Manage stored filters and evaluate them over rows",
		Commands: []*cli.Command{
			cmdFilterPut(),
			cmdFilterList(),
			cmdFilterDelete(),
			cmdFilterApply(),
		},
	}
}

func cmdFilterPut() *cli.Command {
	var id, fieldID, content string
	var condition int64
	var g grid

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Filter ID. A new ID is generated when omitted",
			Destination: &id,
		},
		&cli.StringFlag{
			Name:        "field",
			Aliases:     []string{"f"},
			Usage:       "Field ID the filter applies to",
			Required:    true,
			Destination: &fieldID,
		},
		&cli.Int64Flag{
			Name:        "condition",
			Usage:       "Condition code. checkbox: 0=checked 1=unchecked; select: 0=is 1=is-not 2=empty 3=not-empty 4=contains-any",
			Destination: &condition,
		},
		&cli.StringFlag{
			Name:        "content",
			Usage:       "Comma separated option IDs for select filters",
			Destination: &content,
		},
	}
	flags = append(flags, g.Flags()...)

	return &cli.Command{
		Name:  "put",
		Usage: "Create or replace a filter",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if condition < 0 || condition > 255 {
				return goerr.New("condition must fit in a byte", goerr.V("condition", condition))
			}

			uc, closeRepo, err := g.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			rev, err := uc.Grid.PutFilter(ctx, &model.FilterRevision{
				ID:        model.FilterID(id),
				FieldID:   fieldID,
				Condition: uint8(condition),
				Content:   content,
			})
			if err != nil {
				return err
			}
			return printJSON(c.Root().Writer, rev)
		},
	}
}

func cmdFilterList() *cli.Command {
	var g grid

	return &cli.Command{
		Name:  "list",
		Usage: "Print stored filters",
		Flags: g.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := g.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			revs, err := uc.Grid.ListFilters(ctx)
			if err != nil {
				return err
			}
			if revs == nil {
				revs = []*model.FilterRevision{}
			}
			return printJSON(c.Root().Writer, revs)
		},
	}
}

func cmdFilterDelete() *cli.Command {
	var id string
	var g grid

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Filter ID",
			Required:    true,
			Destination: &id,
		},
	}
	flags = append(flags, g.Flags()...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a filter",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := g.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			return uc.Grid.DeleteFilter(ctx, model.FilterID(id))
		},
	}
}

func cmdFilterApply() *cli.Command {
	var rowIDs []string
	var g grid

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "row",
			Aliases:     []string{"r"},
			Usage:       "Row ID to evaluate. Repeat for multiple rows",
			Required:    true,
			Destination: &rowIDs,
		},
	}
	flags = append(flags, g.Flags()...)

	return &cli.Command{
		Name:  "apply",
		Usage: "Print the rows that pass every stored filter",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := g.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			matched, err := uc.Grid.FilterRows(ctx, rowIDs)
			if err != nil {
				return err
			}
			return printJSON(c.Root().Writer, matched)
		},
	}
}
