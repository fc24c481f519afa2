package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
	"github.com/secmon-lab/gridcell/pkg/repository/file"
	"github.com/secmon-lab/gridcell/pkg/repository/firestore"
	"github.com/secmon-lab/gridcell/pkg/repository/memory"
	"golang.org/x/sync/errgroup"
)

func runCellRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get returns nil for missing cell", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		cell, err := repo.Cell().Get(ctx, "missing-row", "missing-field")
		gt.NoError(t, err).Required()
		gt.Value(t, cell).Nil()
	})

	t.Run("Save creates cell", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		rowID := uuid.NewString()

		err := repo.Cell().Save(ctx, &model.Cell{
			RowID:     rowID,
			FieldID:   "platform",
			FieldType: types.FieldTypeMultiSelect,
			Data:      "google,facebook",
		})
		gt.NoError(t, err).Required()

		cell, err := repo.Cell().Get(ctx, rowID, "platform")
		gt.NoError(t, err).Required()
		gt.Value(t, cell).NotNil().Required()
		gt.S(t, cell.Data).Equal("google,facebook")
		gt.Value(t, cell.FieldType).Equal(types.FieldTypeMultiSelect)
		gt.B(t, cell.UpdatedAt.IsZero()).False()
	})

	t.Run("Save updates existing cell", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		rowID := uuid.NewString()

		cell := &model.Cell{RowID: rowID, FieldID: "done", FieldType: types.FieldTypeCheckbox, Data: model.CheckboxNo}
		gt.NoError(t, repo.Cell().Save(ctx, cell)).Required()

		cell.Data = model.CheckboxYes
		gt.NoError(t, repo.Cell().Save(ctx, cell)).Required()

		got, err := repo.Cell().Get(ctx, rowID, "done")
		gt.NoError(t, err).Required()
		gt.S(t, got.Data).Equal(model.CheckboxYes)
	})

	t.Run("returned cells are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		rowID := uuid.NewString()

		gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{RowID: rowID, FieldID: "f", Data: "a"})).Required()

		got, err := repo.Cell().Get(ctx, rowID, "f")
		gt.NoError(t, err).Required()
		got.Data = "mutated"

		again, err := repo.Cell().Get(ctx, rowID, "f")
		gt.NoError(t, err).Required()
		gt.S(t, again.Data).Equal("a")
	})

	t.Run("GetByRowIDs skips rows without cell", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		fieldID := "field-" + uuid.NewString()
		row1, row2, row3 := uuid.NewString(), uuid.NewString(), uuid.NewString()

		gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{RowID: row1, FieldID: fieldID, Data: "a"})).Required()
		gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{RowID: row3, FieldID: fieldID, Data: "c"})).Required()
		gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{RowID: row2, FieldID: "other", Data: "b"})).Required()

		cells, err := repo.Cell().GetByRowIDs(ctx, fieldID, []string{row1, row2, row3})
		gt.NoError(t, err).Required()
		gt.Value(t, len(cells)).Equal(2)
		gt.S(t, cells[row1].Data).Equal("a")
		gt.S(t, cells[row3].Data).Equal("c")
	})

	t.Run("ListByField returns cells of the field", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		fieldID := "field-" + uuid.NewString()

		for i := range 3 {
			gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{
				RowID:   fmt.Sprintf("row-%d", i),
				FieldID: fieldID,
				Data:    fmt.Sprintf("v%d", i),
			})).Required()
		}

		cells, err := repo.Cell().ListByField(ctx, fieldID)
		gt.NoError(t, err).Required()
		gt.A(t, cells).Length(3).Required()
		gt.S(t, cells[0].RowID).Equal("row-0")
		gt.S(t, cells[2].RowID).Equal("row-2")
	})

	t.Run("Update passes nil for a missing cell and saves the result", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		rowID := uuid.NewString()

		var seen []*model.Cell
		update := func(prev *model.Cell) (*model.Cell, error) {
			seen = append(seen, prev)
			data := "a"
			if prev != nil {
				data = prev.Data + ",b"
			}
			return &model.Cell{FieldType: types.FieldTypeMultiSelect, Data: data}, nil
		}

		cell, err := repo.Cell().Update(ctx, rowID, "tags", update)
		gt.NoError(t, err).Required()
		gt.S(t, cell.RowID).Equal(rowID)
		gt.S(t, cell.FieldID).Equal("tags")
		gt.S(t, cell.Data).Equal("a")
		gt.B(t, cell.UpdatedAt.IsZero()).False()
		gt.Value(t, seen[0]).Nil()

		cell, err = repo.Cell().Update(ctx, rowID, "tags", update)
		gt.NoError(t, err).Required()
		gt.S(t, cell.Data).Equal("a,b")

		stored, err := repo.Cell().Get(ctx, rowID, "tags")
		gt.NoError(t, err).Required()
		gt.S(t, stored.Data).Equal("a,b")
		gt.Value(t, stored.FieldType).Equal(types.FieldTypeMultiSelect)
	})

	t.Run("Update writes nothing when the update function fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		rowID := uuid.NewString()
		errRejected := goerr.New("rejected")

		gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{RowID: rowID, FieldID: "tags", Data: "a"})).Required()

		_, err := repo.Cell().Update(ctx, rowID, "tags", func(prev *model.Cell) (*model.Cell, error) {
			return nil, errRejected
		})
		gt.Error(t, err).Is(errRejected)

		stored, err := repo.Cell().Get(ctx, rowID, "tags")
		gt.NoError(t, err).Required()
		gt.S(t, stored.Data).Equal("a")
	})

	t.Run("concurrent Updates of one cell keep every change", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		rowID := uuid.NewString()
		const writers = 32

		var eg errgroup.Group
		for i := range writers {
			id := fmt.Sprintf("opt-%d", i)
			eg.Go(func() error {
				_, err := repo.Cell().Update(ctx, rowID, "tags", func(prev *model.Cell) (*model.Cell, error) {
					ids := model.SelectOptionIDs{}
					if prev != nil {
						ids = model.ParseSelectOptionIDs(prev.Data)
					}
					return &model.Cell{Data: append(ids, id).String()}, nil
				})
				return err
			})
		}
		gt.NoError(t, eg.Wait()).Required()

		stored, err := repo.Cell().Get(ctx, rowID, "tags")
		gt.NoError(t, err).Required()
		ids := model.ParseSelectOptionIDs(stored.Data)
		gt.A(t, ids).Length(writers)
		for i := range writers {
			gt.B(t, ids.Contains(fmt.Sprintf("opt-%d", i))).True()
		}
	})

	t.Run("DeleteByRowID removes every cell of the row", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		rowID := uuid.NewString()

		gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{RowID: rowID, FieldID: "a", Data: "1"})).Required()
		gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{RowID: rowID, FieldID: "b", Data: "2"})).Required()

		gt.NoError(t, repo.Cell().DeleteByRowID(ctx, rowID)).Required()

		cell, err := repo.Cell().Get(ctx, rowID, "a")
		gt.NoError(t, err).Required()
		gt.Value(t, cell).Nil()
	})
}

func TestCellRepository_Memory(t *testing.T) {
	runCellRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestCellRepository_File(t *testing.T) {
	runCellRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := file.New(filepath.Join(t.TempDir(), "grid.json"))
		gt.NoError(t, err).Required()
		return repo
	})
}

func TestCellRepository_FilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "grid.json")

	repo, err := file.New(path)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Cell().Save(ctx, &model.Cell{
		RowID:     "r1",
		FieldID:   "platform",
		FieldType: types.FieldTypeMultiSelect,
		Data:      "google",
		UpdatedAt: time.Now(),
	})).Required()

	reopened, err := file.New(path)
	gt.NoError(t, err).Required()

	cell, err := reopened.Cell().Get(ctx, "r1", "platform")
	gt.NoError(t, err).Required()
	gt.Value(t, cell).NotNil().Required()
	gt.S(t, cell.Data).Equal("google")
}

func TestFileRepository_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	gt.NoError(t, os.WriteFile(path, []byte("{not json"), 0600)).Required()

	_, err := file.New(path)
	gt.Value(t, err).NotNil()
}

func TestCellRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("FIRESTORE_DATABASE_ID")

	runCellRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, databaseID,
			firestore.WithCollectionPrefix("test_"+uuid.NewString()[:8]))
		gt.NoError(t, err).Required()
		t.Cleanup(func() { _ = repo.Close() })
		return repo
	})
}
