package memory

import (
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
)

type Memory struct {
	cell   *cellRepository
	filter *filterRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		cell:   newCellRepository(),
		filter: newFilterRepository(),
	}
}

func (m *Memory) Cell() interfaces.CellRepository {
	return m.cell
}

func (m *Memory) Filter() interfaces.FilterRepository {
	return m.filter
}

func (m *Memory) Close() error {
	return nil
}

// Snapshot is a point-in-time copy of the whole store
type Snapshot struct {
	Cells   []*model.Cell           `json:"cells"`
	Filters []*model.FilterRevision `json:"filters"`
}

// Snapshot returns a deep copy of every stored cell and filter
func (m *Memory) Snapshot() *Snapshot {
	return &Snapshot{
		Cells:   m.cell.all(),
		Filters: m.filter.all(),
	}
}

// NewFromSnapshot creates a store pre-populated from a snapshot
func NewFromSnapshot(s *Snapshot) *Memory {
	m := New()
	if s == nil {
		return m
	}
	for _, c := range s.Cells {
		m.cell.cells[c.Key()] = c.Copy()
	}
	for _, f := range s.Filters {
		m.filter.filters[f.ID] = f.Copy()
	}
	return m
}
