package interfaces

import (
	"context"

	"github.com/secmon-lab/gridcell/pkg/domain/model"
)

// CellUpdateFunc computes the next state of a cell from the stored one
type CellUpdateFunc func(previous *model.Cell) (*model.Cell, error)

// CellRepository defines the interface for Cell data access
type CellRepository interface {
	// Get retrieves a cell.
	// Returns nil, nil if the cell has never been written.
	Get(ctx context.Context, rowID, fieldID string) (*model.Cell, error)

	// GetByRowIDs retrieves the cells of one field for multiple rows.
	// Rows without a stored cell are absent from the result map.
	GetByRowIDs(ctx context.Context, fieldID string, rowIDs []string) (map[string]*model.Cell, error)

	// ListByField retrieves every stored cell of a field
	ListByField(ctx context.Context, fieldID string) ([]*model.Cell, error)

	// Save creates or updates a cell keyed by RowID and FieldID
	Save(ctx context.Context, cell *model.Cell) error

	// Update reads the cell, passes it to fn (nil if never written) and saves
	// the cell fn returns, as one atomic step against concurrent updates of
	// the same cell. Nothing is written when fn fails. fn may be called more
	// than once when the backend retries.
	Update(ctx context.Context, rowID, fieldID string, fn CellUpdateFunc) (*model.Cell, error)

	// DeleteByRowID deletes all cells of a row
	DeleteByRowID(ctx context.Context, rowID string) error
}
