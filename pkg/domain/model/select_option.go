package model

import (
	"slices"
	"strings"

	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
)

// SelectOptionIDsSeparator joins option IDs in a persisted cell value. Option
// IDs never contain it.
const SelectOptionIDsSeparator = ","

// SelectOptionIDs is the ordered list of option IDs held by one cell.
// Order is insertion order only; duplicates are not removed.
type SelectOptionIDs []string

// ParseSelectOptionIDs splits a persisted cell value into option IDs. An empty
// string yields an empty list and empty segments are skipped.
func ParseSelectOptionIDs(data string) SelectOptionIDs {
	if data == "" {
		return SelectOptionIDs{}
	}
	parts := strings.Split(data, SelectOptionIDsSeparator)
	ids := make(SelectOptionIDs, 0, len(parts))
	for _, id := range parts {
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// String returns the persisted form of the IDs
func (ids SelectOptionIDs) String() string {
	return strings.Join(ids, SelectOptionIDsSeparator)
}

// Contains reports whether id is present
func (ids SelectOptionIDs) Contains(id string) bool {
	return slices.Contains(ids, id)
}

// Without returns a copy with every occurrence of id removed, keeping the
// order of the remaining IDs
func (ids SelectOptionIDs) Without(id string) SelectOptionIDs {
	remaining := make(SelectOptionIDs, 0, len(ids))
	for _, v := range ids {
		if v != id {
			remaining = append(remaining, v)
		}
	}
	return remaining
}

// SelectOptionCellData is the decoded view of a select cell. SelectOptions
// follows the order of Options, not the order stored in the cell.
type SelectOptionCellData struct {
	Options       []config.SelectOption `json:"options"`
	SelectOptions []config.SelectOption `json:"select_options"`
}

// NewSelectOptionCellData resolves the cell's option IDs against the registry.
// IDs without a registry entry are dropped.
func NewSelectOptionCellData(ids SelectOptionIDs, options []config.SelectOption) *SelectOptionCellData {
	return &SelectOptionCellData{
		Options:       options,
		SelectOptions: MakeSelectedSelectOptions(ids, options),
	}
}

// MakeSelectedSelectOptions returns the registry options whose ID is in ids,
// in registry order
func MakeSelectedSelectOptions(ids SelectOptionIDs, options []config.SelectOption) []config.SelectOption {
	selected := make([]config.SelectOption, 0, len(ids))
	for _, opt := range options {
		if ids.Contains(opt.ID) {
			selected = append(selected, opt)
		}
	}
	return selected
}

// SelectedSelectOptions is the set of resolved options a select filter is
// evaluated against
type SelectedSelectOptions struct {
	Options []config.SelectOption
}

// NewSelectedSelectOptions extracts the selected options from decoded cell data
func NewSelectedSelectOptions(data *SelectOptionCellData) SelectedSelectOptions {
	if data == nil {
		return SelectedSelectOptions{}
	}
	return SelectedSelectOptions{Options: data.SelectOptions}
}

// Has reports whether an option with the given ID is selected
func (s SelectedSelectOptions) Has(id string) bool {
	for _, opt := range s.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no option is selected
func (s SelectedSelectOptions) IsEmpty() bool {
	return len(s.Options) == 0
}
