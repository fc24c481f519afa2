package typeoption_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/typeoption"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

func TestCheckbox_ApplyChangeset(t *testing.T) {
	to := &typeoption.CheckboxTypeOption{}

	for input, want := range map[string]string{
		"true":  model.CheckboxYes,
		"YES":   model.CheckboxYes,
		"1":     model.CheckboxYes,
		"false": model.CheckboxNo,
		"no":    model.CheckboxNo,
		"":      model.CheckboxNo,
	} {
		t.Run(input, func(t *testing.T) {
			got, err := to.ApplyChangeset(input, nil)
			gt.NoError(t, err).Required()
			gt.S(t, got).Equal(want)
		})
	}
}

func TestCheckbox_Decode(t *testing.T) {
	to := &typeoption.CheckboxTypeOption{}

	decoded := to.DecodeCellData("Yes", types.FieldTypeCheckbox)
	gt.Value(t, decoded.Checkbox).NotNil().Required()
	gt.B(t, decoded.Checkbox.Checked).True()

	decoded = to.DecodeCellData("yes", types.FieldTypeMultiSelect)
	gt.B(t, decoded.Checkbox.Checked).False()
}

func TestCheckbox_ApplyFilter(t *testing.T) {
	to := &typeoption.CheckboxTypeOption{}
	checked := &model.FilterRevision{Condition: 0}
	unchecked := &model.FilterRevision{Condition: 1}
	corrupt := &model.FilterRevision{Condition: 7}

	for _, data := range []string{"Yes", "No", "true", "false", ""} {
		a := to.ApplyFilter(data, types.FieldTypeCheckbox, checked)
		b := to.ApplyFilter(data, types.FieldTypeCheckbox, unchecked)
		gt.B(t, a != b).True()
		// unknown condition code behaves like IsChecked
		gt.Value(t, to.ApplyFilter(data, types.FieldTypeCheckbox, corrupt)).Equal(a)
	}

	gt.B(t, to.ApplyFilter("No", types.FieldTypeSingleSelect, checked)).True()
}
