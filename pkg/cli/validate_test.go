package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridcell/pkg/cli"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/repository/file"
)

const testSchema = `
[[fields]]
id = "done"
name = "Done"
type = "checkbox"

[[fields]]
id = "tags"
name = "Tags"
type = "multi-select"

  [[fields.options]]
  id = "google"
  name = "Google"

  [[fields.options]]
  id = "facebook"
  name = "Facebook"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func run(args ...string) error {
	base := []string{"gridcell", "--log-level", "error", "--log-output", "stderr"}
	return cli.Run(context.Background(), append(base, args...), "test")
}

func TestRun_ValidateCommand_ValidConfig(t *testing.T) {
	schemaPath := writeFile(t, "gridcell.toml", testSchema)

	gt.NoError(t, run("validate", "--schema", schemaPath))
}

func TestRun_ValidateCommand_InvalidConfig(t *testing.T) {
	schemaPath := writeFile(t, "gridcell.toml", `
[[fields]]
id = "INVALID_ID"
name = "Bad Field"
type = "checkbox"
`)

	gt.Value(t, run("validate", "--schema", schemaPath)).NotNil()
}

func TestRun_ValidateCommand_MissingConfig(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "nonexistent.toml")

	gt.Value(t, run("validate", "--schema", schemaPath)).NotNil()
}

func TestRun_ValidateCommand_InconsistentData(t *testing.T) {
	schemaPath := writeFile(t, "gridcell.toml", testSchema)
	dataPath := filepath.Join(t.TempDir(), "cells.json")

	repo, err := file.New(dataPath)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Cell().Save(context.Background(), &model.Cell{
		RowID: "row-1", FieldID: "tags", FieldType: "multi-select", Data: "google,myspace",
	})).Required()
	gt.NoError(t, repo.Close()).Required()

	err = run("validate", "--schema", schemaPath,
		"--repository-backend", "file", "--repository-path", dataPath)
	gt.Error(t, err).Is(cli.ErrInconsistentData)
}

func TestRun_CellAndFilterCommands(t *testing.T) {
	schemaPath := writeFile(t, "gridcell.toml", testSchema)
	dataPath := filepath.Join(t.TempDir(), "cells.json")
	repoArgs := []string{"--schema", schemaPath, "--repository-backend", "file", "--repository-path", dataPath}

	withRepo := func(args ...string) []string {
		return append(args, repoArgs...)
	}

	gt.NoError(t, run(withRepo("cell", "update", "--row", "row-1", "--field", "tags", "--insert", "google")...)).Required()
	gt.NoError(t, run(withRepo("cell", "update", "--row", "row-2", "--field", "tags", "--insert", "facebook")...)).Required()
	gt.NoError(t, run(withRepo("cell", "update", "--row", "row-1", "--field", "done", "--changeset", "yes")...)).Required()
	gt.NoError(t, run(withRepo("cell", "get", "--row", "row-1", "--field", "tags")...)).Required()

	// Malformed changeset is rejected
	gt.Error(t, run(withRepo("cell", "update", "--row", "row-1", "--field", "tags", "--changeset", "123")...)).
		Is(model.ErrInvalidChangeset)

	gt.NoError(t, run(withRepo("filter", "put", "--id", "google", "--field", "tags", "--condition", "0", "--content", "google")...)).Required()
	gt.NoError(t, run(withRepo("filter", "list")...)).Required()
	gt.NoError(t, run(withRepo("filter", "apply", "--row", "row-1", "--row", "row-2")...)).Required()

	repo, err := file.New(dataPath)
	gt.NoError(t, err).Required()
	ctx := context.Background()

	cell, err := repo.Cell().Get(ctx, "row-1", "tags")
	gt.NoError(t, err).Required()
	gt.Value(t, cell.Data).Equal("google")

	done, err := repo.Cell().Get(ctx, "row-1", "done")
	gt.NoError(t, err).Required()
	gt.Value(t, done.Data).Equal(model.CheckboxYes)

	rev, err := repo.Filter().Get(ctx, "google")
	gt.NoError(t, err).Required()
	gt.Value(t, rev).NotNil()

	gt.NoError(t, run(withRepo("filter", "delete", "--id", "google")...)).Required()
}

func TestRun_CellUpdateCheckbox(t *testing.T) {
	schemaPath := writeFile(t, "gridcell.toml", testSchema)
	dataPath := filepath.Join(t.TempDir(), "cells.json")
	update := func(args ...string) error {
		base := []string{"cell", "update", "--row", "row-1", "--field", "done"}
		base = append(base, args...)
		return run(append(base, "--schema", schemaPath, "--repository-backend", "file", "--repository-path", dataPath)...)
	}
	stored := func() string {
		repo, err := file.New(dataPath)
		gt.NoError(t, err).Required()
		cell, err := repo.Cell().Get(context.Background(), "row-1", "done")
		gt.NoError(t, err).Required()
		gt.Value(t, cell).NotNil().Required()
		return cell.Data
	}

	gt.NoError(t, update("--changeset", "yes")).Required()
	gt.Value(t, stored()).Equal(model.CheckboxYes)

	// select shorthands do not apply to checkbox fields
	gt.Error(t, update("--insert", "yes")).Is(cli.ErrInvalidArgument)
	gt.Error(t, update("--delete", "yes")).Is(cli.ErrInvalidArgument)
	gt.Value(t, stored()).Equal(model.CheckboxYes)

	// an explicitly empty changeset unchecks
	gt.NoError(t, update("--changeset", "")).Required()
	gt.Value(t, stored()).Equal(model.CheckboxNo)

	gt.Error(t, update()).Is(cli.ErrInvalidArgument)
	gt.Error(t, update("--changeset", "yes", "--insert", "x")).Is(cli.ErrInvalidArgument)
}
