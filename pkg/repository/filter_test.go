package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
	"github.com/secmon-lab/gridcell/pkg/repository/file"
	"github.com/secmon-lab/gridcell/pkg/repository/firestore"
	"github.com/secmon-lab/gridcell/pkg/repository/memory"
)

func runFilterRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		rev := &model.FilterRevision{
			ID:        model.NewFilterID(),
			FieldID:   "platform",
			FieldType: types.FieldTypeMultiSelect,
			Condition: uint8(types.SelectOptionConditionOptionContainsAny),
			Content:   "google,facebook",
		}
		gt.NoError(t, repo.Filter().Put(ctx, rev)).Required()

		got, err := repo.Filter().Get(ctx, rev.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil().Required()
		gt.Value(t, got.Condition).Equal(rev.Condition)
		gt.S(t, got.Content).Equal("google,facebook")
		gt.Value(t, got.FieldType).Equal(types.FieldTypeMultiSelect)
	})

	t.Run("Get returns nil for missing filter", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.Filter().Get(context.Background(), model.NewFilterID())
		gt.NoError(t, err).Required()
		gt.Value(t, got).Nil()
	})

	t.Run("Put requires ID", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Filter().Put(context.Background(), &model.FilterRevision{FieldID: "platform"})
		gt.Value(t, err).NotNil()
	})

	t.Run("ListByField", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		fieldID := "field-" + uuid.NewString()

		gt.NoError(t, repo.Filter().Put(ctx, &model.FilterRevision{ID: model.NewFilterID(), FieldID: fieldID})).Required()
		gt.NoError(t, repo.Filter().Put(ctx, &model.FilterRevision{ID: model.NewFilterID(), FieldID: fieldID})).Required()
		gt.NoError(t, repo.Filter().Put(ctx, &model.FilterRevision{ID: model.NewFilterID(), FieldID: "other-" + fieldID})).Required()

		revs, err := repo.Filter().ListByField(ctx, fieldID)
		gt.NoError(t, err).Required()
		gt.A(t, revs).Length(2)

		all, err := repo.Filter().List(ctx)
		gt.NoError(t, err).Required()
		gt.B(t, len(all) >= 3).True()
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		id := model.NewFilterID()

		gt.NoError(t, repo.Filter().Put(ctx, &model.FilterRevision{ID: id, FieldID: "done"})).Required()
		gt.NoError(t, repo.Filter().Delete(ctx, id)).Required()
		// deleting twice is fine
		gt.NoError(t, repo.Filter().Delete(ctx, id)).Required()

		got, err := repo.Filter().Get(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Nil()
	})
}

func TestFilterRepository_Memory(t *testing.T) {
	runFilterRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFilterRepository_File(t *testing.T) {
	runFilterRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := file.New(filepath.Join(t.TempDir(), "grid.json"))
		gt.NoError(t, err).Required()
		return repo
	})
}

func TestFilterRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("FIRESTORE_DATABASE_ID")

	runFilterRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, databaseID,
			firestore.WithCollectionPrefix("test_"+uuid.NewString()[:8]))
		gt.NoError(t, err).Required()
		t.Cleanup(func() { _ = repo.Close() })
		return repo
	})
}
