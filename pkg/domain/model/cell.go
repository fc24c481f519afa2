package model

import (
	"time"

	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// Cell is the stored value of one field in one row. Data is the persisted
// string form understood by the field's type option. FieldType records the
// type the data was written under.
type Cell struct {
	RowID     string          `json:"row_id"`
	FieldID   string          `json:"field_id"`
	FieldType types.FieldType `json:"field_type"`
	Data      string          `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CellKey identifies a cell within the grid
type CellKey struct {
	RowID   string
	FieldID string
}

// Key returns the cell's identifying key
func (c *Cell) Key() CellKey {
	return CellKey{RowID: c.RowID, FieldID: c.FieldID}
}

// Copy returns a copy of the cell
func (c *Cell) Copy() *Cell {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}
