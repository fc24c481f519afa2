package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
)

type cellRepository struct {
	mu    sync.RWMutex
	cells map[model.CellKey]*model.Cell
}

func newCellRepository() *cellRepository {
	return &cellRepository{
		cells: make(map[model.CellKey]*model.Cell),
	}
}

func (r *cellRepository) Get(ctx context.Context, rowID, fieldID string) (*model.Cell, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cell, ok := r.cells[model.CellKey{RowID: rowID, FieldID: fieldID}]
	if !ok {
		return nil, nil
	}
	return cell.Copy(), nil
}

func (r *cellRepository) GetByRowIDs(ctx context.Context, fieldID string, rowIDs []string) (map[string]*model.Cell, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*model.Cell, len(rowIDs))
	for _, rowID := range rowIDs {
		if cell, ok := r.cells[model.CellKey{RowID: rowID, FieldID: fieldID}]; ok {
			result[rowID] = cell.Copy()
		}
	}
	return result, nil
}

func (r *cellRepository) ListByField(ctx context.Context, fieldID string) ([]*model.Cell, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cells := make([]*model.Cell, 0)
	for key, cell := range r.cells {
		if key.FieldID == fieldID {
			cells = append(cells, cell.Copy())
		}
	}

	sort.Slice(cells, func(i, j int) bool {
		return cells[i].RowID < cells[j].RowID
	})
	return cells, nil
}

func (r *cellRepository) Save(ctx context.Context, cell *model.Cell) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := cell.Copy()
	saved.UpdatedAt = time.Now().UTC()

	r.cells[saved.Key()] = saved
	return nil
}

func (r *cellRepository) Update(ctx context.Context, rowID, fieldID string, fn interfaces.CellUpdateFunc) (*model.Cell, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := model.CellKey{RowID: rowID, FieldID: fieldID}
	var previous *model.Cell
	if cell, ok := r.cells[key]; ok {
		previous = cell.Copy()
	}

	next, err := fn(previous)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, goerr.New("cell update returned no cell")
	}

	saved := next.Copy()
	saved.RowID = rowID
	saved.FieldID = fieldID
	saved.UpdatedAt = time.Now().UTC()

	r.cells[key] = saved
	return saved.Copy(), nil
}

func (r *cellRepository) DeleteByRowID(ctx context.Context, rowID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.cells {
		if key.RowID == rowID {
			delete(r.cells, key)
		}
	}
	return nil
}

func (r *cellRepository) all() []*model.Cell {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cells := make([]*model.Cell, 0, len(r.cells))
	for _, cell := range r.cells {
		cells = append(cells, cell.Copy())
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].RowID != cells[j].RowID {
			return cells[i].RowID < cells[j].RowID
		}
		return cells[i].FieldID < cells[j].FieldID
	})
	return cells
}
