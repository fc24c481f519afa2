package typeoption

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// SingleSelectTypeOption is the codec of single-select fields. A cell holds
// at most one option ID.
type SingleSelectTypeOption struct {
	selectOptions
}

// NewSingleSelectTypeOption creates a single-select codec over a snapshot of options
func NewSingleSelectTypeOption(options []config.SelectOption, disableColor bool) *SingleSelectTypeOption {
	return &SingleSelectTypeOption{selectOptions: newSelectOptions(options, disableColor, true)}
}

func (t *SingleSelectTypeOption) FieldType() types.FieldType {
	return types.FieldTypeSingleSelect
}

// InsertOption returns a type option with opt added, or replacing the option
// with the same ID in place
func (t *SingleSelectTypeOption) InsertOption(opt config.SelectOption) *SingleSelectTypeOption {
	return NewSingleSelectTypeOption(t.insertOption(opt), t.disableColor)
}

// DeleteOption returns a type option without the option of the given ID
func (t *SingleSelectTypeOption) DeleteOption(optionID string) *SingleSelectTypeOption {
	return NewSingleSelectTypeOption(t.deleteOption(optionID), t.disableColor)
}

func (t *SingleSelectTypeOption) DecodeCellData(data string, decodedFieldType types.FieldType) *DecodedCell {
	return t.decode(data, decodedFieldType, types.FieldTypeSingleSelect)
}

// ApplyChangeset applies an insert/delete changeset to a single-select cell.
// Inserting the selected ID clears the cell and inserting any other ID
// replaces it. A delete clears the cell when it names the selected ID. An
// insert naming more than one ID is rejected.
func (t *SingleSelectTypeOption) ApplyChangeset(changeset string, previous *model.Cell) (string, error) {
	cs, err := model.ParseSelectOptionCellChangeset(changeset)
	if err != nil {
		return "", goerr.Wrap(err, "failed to apply single-select changeset")
	}

	insertID, hasInsert := cs.Insert()
	if hasInsert {
		ids := model.ParseSelectOptionIDs(insertID)
		switch len(ids) {
		case 0:
			insertID, hasInsert = "", false
		case 1:
			insertID = ids[0]
		default:
			return "", goerr.Wrap(model.ErrInvalidChangeset, "single-select changeset inserts more than one option",
				goerr.V(model.ChangesetKey, changeset))
		}
	}

	if previous == nil {
		return insertID, nil
	}

	current := t.cellIDs(previous.Data)

	if hasInsert {
		if current.Contains(insertID) {
			current = nil
		} else {
			current = model.SelectOptionIDs{insertID}
		}
	}

	if deleteID, ok := cs.Delete(); ok {
		current = current.Without(deleteID)
	}

	return current.String(), nil
}

func (t *SingleSelectTypeOption) ApplyFilter(data string, decodedFieldType types.FieldType, filter *model.FilterRevision) bool {
	return t.applyFilter(data, decodedFieldType, filter)
}
