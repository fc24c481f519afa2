package typeoption

import (
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// CheckboxTypeOption is the codec of checkbox fields
type CheckboxTypeOption struct{}

func (t *CheckboxTypeOption) FieldType() types.FieldType {
	return types.FieldTypeCheckbox
}

func (t *CheckboxTypeOption) DecodeCellData(data string, decodedFieldType types.FieldType) *DecodedCell {
	if decodedFieldType != types.FieldTypeCheckbox {
		data = ""
	}
	cell := model.CheckboxCellData(data)
	return &DecodedCell{
		FieldType: types.FieldTypeCheckbox,
		Checkbox: &CheckboxCell{
			Data:    cell,
			Checked: cell.IsCheck(),
		},
	}
}

// ApplyChangeset normalizes the raw changeset text to the stored Yes/No form.
// The previous value does not matter.
func (t *CheckboxTypeOption) ApplyChangeset(changeset string, _ *model.Cell) (string, error) {
	if model.ParseCheckboxValue(changeset) {
		return model.CheckboxYes, nil
	}
	return model.CheckboxNo, nil
}

func (t *CheckboxTypeOption) ApplyFilter(data string, decodedFieldType types.FieldType, filter *model.FilterRevision) bool {
	if decodedFieldType != types.FieldTypeCheckbox {
		return true
	}
	return model.NewCheckboxFilter(filter).Apply(model.CheckboxCellData(data))
}
