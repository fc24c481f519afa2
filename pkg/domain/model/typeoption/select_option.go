package typeoption

import (
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// selectOptions is the option registry shared by single-select and
// multi-select type options. Mutating operations return new slices; the
// receiver is never modified.
type selectOptions struct {
	options      []config.SelectOption
	disableColor bool
	// single limits a cell to its first stored option ID
	single bool
}

func newSelectOptions(options []config.SelectOption, disableColor, single bool) selectOptions {
	copied := make([]config.SelectOption, len(options))
	copy(copied, options)
	return selectOptions{options: copied, disableColor: disableColor, single: single}
}

// Options returns a copy of the registry in registry order
func (s selectOptions) Options() []config.SelectOption {
	copied := make([]config.SelectOption, len(s.options))
	copy(copied, s.options)
	return copied
}

// DisableColor reports whether option colors are hidden for the field
func (s selectOptions) DisableColor() bool {
	return s.disableColor
}

// SelectedSelectOptions resolves stored cell data against the registry
func (s selectOptions) SelectedSelectOptions(data string) *model.SelectOptionCellData {
	return model.NewSelectOptionCellData(s.cellIDs(data), s.Options())
}

func (s selectOptions) cellIDs(data string) model.SelectOptionIDs {
	ids := model.ParseSelectOptionIDs(data)
	if s.single && len(ids) > 1 {
		return ids[:1]
	}
	return ids
}

// CreateOption builds a new option whose color continues the palette rotation
func (s selectOptions) CreateOption(name string) config.SelectOption {
	opt := config.NewSelectOption(name)
	opt.Color = types.NextSelectOptionColor(len(s.options))
	return opt
}

func (s selectOptions) insertOption(opt config.SelectOption) []config.SelectOption {
	updated := s.Options()
	for i := range updated {
		if updated[i].ID == opt.ID {
			updated[i] = opt
			return updated
		}
	}
	return append(updated, opt)
}

func (s selectOptions) deleteOption(optionID string) []config.SelectOption {
	updated := make([]config.SelectOption, 0, len(s.options))
	for _, opt := range s.options {
		if opt.ID != optionID {
			updated = append(updated, opt)
		}
	}
	return updated
}

func (s selectOptions) decode(data string, decodedFieldType, fieldType types.FieldType) *DecodedCell {
	if !decodedFieldType.IsSelectOption() {
		return &DecodedCell{
			FieldType:    fieldType,
			SelectOption: &model.SelectOptionCellData{Options: s.Options(), SelectOptions: []config.SelectOption{}},
		}
	}
	return &DecodedCell{
		FieldType:    fieldType,
		SelectOption: s.SelectedSelectOptions(data),
	}
}

func (s selectOptions) applyFilter(data string, decodedFieldType types.FieldType, rev *model.FilterRevision) bool {
	if !decodedFieldType.IsSelectOption() {
		return true
	}
	selected := model.NewSelectedSelectOptions(s.SelectedSelectOptions(data))
	return model.NewSelectOptionFilter(rev).Apply(selected)
}
