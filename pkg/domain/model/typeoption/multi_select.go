package typeoption

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// MultiSelectTypeOption is the codec of multi-select fields
type MultiSelectTypeOption struct {
	selectOptions
}

// NewMultiSelectTypeOption creates a multi-select codec over a snapshot of options
func NewMultiSelectTypeOption(options []config.SelectOption, disableColor bool) *MultiSelectTypeOption {
	return &MultiSelectTypeOption{selectOptions: newSelectOptions(options, disableColor, false)}
}

func (t *MultiSelectTypeOption) FieldType() types.FieldType {
	return types.FieldTypeMultiSelect
}

// InsertOption returns a type option with opt added, or replacing the option
// with the same ID in place
func (t *MultiSelectTypeOption) InsertOption(opt config.SelectOption) *MultiSelectTypeOption {
	return NewMultiSelectTypeOption(t.insertOption(opt), t.disableColor)
}

// DeleteOption returns a type option without the option of the given ID
func (t *MultiSelectTypeOption) DeleteOption(optionID string) *MultiSelectTypeOption {
	return NewMultiSelectTypeOption(t.deleteOption(optionID), t.disableColor)
}

func (t *MultiSelectTypeOption) DecodeCellData(data string, decodedFieldType types.FieldType) *DecodedCell {
	return t.decode(data, decodedFieldType, types.FieldTypeMultiSelect)
}

// ApplyChangeset applies an insert/delete changeset to a multi-select cell.
// An insert of an ID that is already selected deselects it; otherwise the ID
// is appended. A delete removes every occurrence. Without a previous cell the
// result is the inserted ID and deletes have no effect.
func (t *MultiSelectTypeOption) ApplyChangeset(changeset string, previous *model.Cell) (string, error) {
	cs, err := model.ParseSelectOptionCellChangeset(changeset)
	if err != nil {
		return "", goerr.Wrap(err, "failed to apply multi-select changeset")
	}

	insertID, hasInsert := cs.Insert()
	if previous == nil {
		return insertID, nil
	}

	ids := model.ParseSelectOptionIDs(previous.Data)
	if hasInsert {
		if ids.Contains(insertID) {
			ids = ids.Without(insertID)
		} else {
			ids = append(ids, insertID)
		}
	}

	if deleteID, ok := cs.Delete(); ok {
		ids = ids.Without(deleteID)
	}

	return ids.String(), nil
}

func (t *MultiSelectTypeOption) ApplyFilter(data string, decodedFieldType types.FieldType, filter *model.FilterRevision) bool {
	return t.applyFilter(data, decodedFieldType, filter)
}
