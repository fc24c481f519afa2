// Package file provides a repository that keeps data in memory and writes a
// JSON snapshot to a single file after every mutation. The file is replaced
// atomically so a crash never leaves a partially written snapshot.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/natefinch/atomic"
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/repository/memory"
)

const pathKey = "path"

type File struct {
	path  string
	mu    sync.Mutex
	store *memory.Memory
}

var _ interfaces.Repository = &File{}

// New opens the snapshot at path. A missing file starts an empty store.
func New(path string) (*File, error) {
	if path == "" {
		return nil, goerr.New("file repository path is required")
	}

	snapshot, err := load(path)
	if err != nil {
		return nil, err
	}

	return &File{
		path:  path,
		store: memory.NewFromSnapshot(snapshot),
	}, nil
}

func load(path string) (*memory.Snapshot, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read snapshot", goerr.V(pathKey, path))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var snapshot memory.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, goerr.Wrap(err, "failed to decode snapshot", goerr.V(pathKey, path))
	}
	return &snapshot, nil
}

// persist writes the current state. Callers hold f.mu.
func (f *File) persist() error {
	data, err := json.MarshalIndent(f.store.Snapshot(), "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode snapshot")
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return goerr.Wrap(err, "failed to write snapshot", goerr.V(pathKey, f.path))
	}
	return nil
}

// mutate runs a write against the in-memory store and persists the result
func (f *File) mutate(fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	return f.persist()
}

func (f *File) Cell() interfaces.CellRepository {
	return &cellRepository{file: f, base: f.store.Cell()}
}

func (f *File) Filter() interfaces.FilterRepository {
	return &filterRepository{file: f, base: f.store.Filter()}
}

func (f *File) Close() error {
	return nil
}

type cellRepository struct {
	file *File
	base interfaces.CellRepository
}

func (r *cellRepository) Get(ctx context.Context, rowID, fieldID string) (*model.Cell, error) {
	return r.base.Get(ctx, rowID, fieldID)
}

func (r *cellRepository) GetByRowIDs(ctx context.Context, fieldID string, rowIDs []string) (map[string]*model.Cell, error) {
	return r.base.GetByRowIDs(ctx, fieldID, rowIDs)
}

func (r *cellRepository) ListByField(ctx context.Context, fieldID string) ([]*model.Cell, error) {
	return r.base.ListByField(ctx, fieldID)
}

func (r *cellRepository) Save(ctx context.Context, cell *model.Cell) error {
	return r.file.mutate(func() error {
		return r.base.Save(ctx, cell)
	})
}

func (r *cellRepository) Update(ctx context.Context, rowID, fieldID string, fn interfaces.CellUpdateFunc) (*model.Cell, error) {
	var cell *model.Cell
	err := r.file.mutate(func() error {
		var err error
		cell, err = r.base.Update(ctx, rowID, fieldID, fn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cell, nil
}

func (r *cellRepository) DeleteByRowID(ctx context.Context, rowID string) error {
	return r.file.mutate(func() error {
		return r.base.DeleteByRowID(ctx, rowID)
	})
}

type filterRepository struct {
	file *File
	base interfaces.FilterRepository
}

func (r *filterRepository) Get(ctx context.Context, id model.FilterID) (*model.FilterRevision, error) {
	return r.base.Get(ctx, id)
}

func (r *filterRepository) List(ctx context.Context) ([]*model.FilterRevision, error) {
	return r.base.List(ctx)
}

func (r *filterRepository) ListByField(ctx context.Context, fieldID string) ([]*model.FilterRevision, error) {
	return r.base.ListByField(ctx, fieldID)
}

func (r *filterRepository) Put(ctx context.Context, rev *model.FilterRevision) error {
	return r.file.mutate(func() error {
		return r.base.Put(ctx, rev)
	})
}

func (r *filterRepository) Delete(ctx context.Context, id model.FilterID) error {
	return r.file.mutate(func() error {
		return r.base.Delete(ctx, id)
	})
}
