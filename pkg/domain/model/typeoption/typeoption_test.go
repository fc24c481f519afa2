package typeoption_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/model/typeoption"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

func TestNew(t *testing.T) {
	for _, fieldType := range types.AllFieldTypes() {
		t.Run(fieldType.String(), func(t *testing.T) {
			to, err := typeoption.New(config.FieldDefinition{ID: "f", Type: fieldType})
			gt.NoError(t, err).Required()
			gt.Value(t, to.FieldType()).Equal(fieldType)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := typeoption.New(config.FieldDefinition{ID: "f", Type: types.FieldType("date")})
		gt.Error(t, err).Is(typeoption.ErrUnsupportedFieldType)
	})
}

func TestNew_SnapshotsOptions(t *testing.T) {
	options := []config.SelectOption{{ID: "a", Name: "A"}}
	to, err := typeoption.New(config.FieldDefinition{ID: "f", Type: types.FieldTypeMultiSelect, Options: options})
	gt.NoError(t, err).Required()

	options[0].Name = "mutated"
	decoded := to.DecodeCellData("a", types.FieldTypeMultiSelect)
	gt.S(t, decoded.SelectOption.SelectOptions[0].Name).Equal("A")
}
