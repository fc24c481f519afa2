package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// ErrInvalidArgument is returned for conflicting or missing command flags
var ErrInvalidArgument = goerr.New("invalid argument")

func cellFlags(rowID, fieldID *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "row",
			Aliases:     []string{"r"},
			Usage:       "Row ID",
			Required:    true,
			Destination: rowID,
		},
		&cli.StringFlag{
			Name:        "field",
			Aliases:     []string{"f"},
			Usage:       "Field ID",
			Required:    true,
			Destination: fieldID,
		},
	}
}

func cmdCell() *cli.Command {
	return &cli.Command{
		Name:  "cell",
		Usage: "Read and edit cells",
		Commands: []*cli.Command{
			cmdCellGet(),
			cmdCellUpdate(),
		},
	}
}

func cmdCellGet() *cli.Command {
	var rowID, fieldID string
	var g grid

	flags := cellFlags(&rowID, &fieldID)
	flags = append(flags, g.Flags()...)

	return &cli.Command{
		Name:  "get",
		Usage: "Print the decoded cell as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := g.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			decoded, err := uc.Grid.GetCell(ctx, rowID, fieldID)
			if err != nil {
				return err
			}
			return printJSON(c.Root().Writer, decoded)
		},
	}
}

func cmdCellUpdate() *cli.Command {
	var rowID, fieldID string
	var changeset, insertID, deleteID string
	var g grid

	flags := cellFlags(&rowID, &fieldID)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "changeset",
			Usage:       "Raw changeset text. JSON for select fields, a checkbox literal for checkbox fields (empty or \"no\" unchecks)",
			Destination: &changeset,
		},
		&cli.StringFlag{
			Name:        "insert",
			Usage:       "Option ID to toggle in a select cell",
			Destination: &insertID,
		},
		&cli.StringFlag{
			Name:        "delete",
			Usage:       "Option ID to remove from a select cell",
			Destination: &deleteID,
		},
	)
	flags = append(flags, g.Flags()...)

	return &cli.Command{
		Name:  "update",
		Usage: "Apply a changeset to a cell and print the stored cell",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closeRepo, err := g.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeRepo()

			field, ok := uc.Schema().Lookup(fieldID)
			if !ok {
				return goerr.Wrap(usecase.ErrFieldNotFound, "field is not in schema", goerr.V(usecase.FieldIDKey, fieldID))
			}

			shorthand := insertID != "" || deleteID != ""
			switch {
			case c.IsSet("changeset") && shorthand:
				return goerr.Wrap(ErrInvalidArgument, "--changeset cannot be combined with --insert or --delete")
			case c.IsSet("changeset"):
				// an empty changeset is valid: it unchecks a checkbox
			case !shorthand:
				return goerr.Wrap(ErrInvalidArgument, "one of --changeset, --insert or --delete is required")
			case !field.Type.IsSelectOption():
				return goerr.Wrap(ErrInvalidArgument, "--insert and --delete apply to select fields only, use --changeset",
					goerr.V(usecase.FieldIDKey, fieldID),
					goerr.V("field_type", field.Type))
			default:
				cs := &model.SelectOptionCellChangeset{}
				if insertID != "" {
					cs.InsertOptionID = &insertID
				}
				if deleteID != "" {
					cs.DeleteOptionID = &deleteID
				}
				changeset = cs.String()
			}

			cell, err := uc.Grid.UpdateCell(ctx, rowID, fieldID, changeset)
			if err != nil {
				return err
			}
			return printJSON(c.Root().Writer, cell)
		},
	}
}
