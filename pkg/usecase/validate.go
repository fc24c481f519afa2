package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
)

// ValidationIssue represents a single validation issue found during DB consistency check
type ValidationIssue struct {
	RowID   string
	FieldID string
	Message string
	Actual  string
}

// ValidationResult holds the results of DB validation
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateDB checks that stored cells are consistent with the field schema:
// select cells may only reference options that still exist, single-select
// cells hold at most one option and checkbox cells hold a checkbox literal.
// Cells written under another field type are reported as well.
// It does NOT modify any data.
func (uc *UseCases) ValidateDB(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}
	validator := model.NewCellValidator(uc.schema)

	for _, fieldDef := range uc.schema.Fields {
		cells, err := uc.repo.Cell().ListByField(ctx, fieldDef.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list cells",
				goerr.V(FieldIDKey, fieldDef.ID))
		}

		for _, cell := range cells {
			if cell.FieldType != "" && cell.FieldType != fieldDef.Type {
				result.AddIssue(ValidationIssue{
					RowID:   cell.RowID,
					FieldID: cell.FieldID,
					Message: "cell was written under field type " + cell.FieldType.String(),
					Actual:  cell.Data,
				})
				continue
			}

			if err := validator.ValidateCell(cell); err != nil {
				result.AddIssue(ValidationIssue{
					RowID:   cell.RowID,
					FieldID: cell.FieldID,
					Message: issueMessage(err),
					Actual:  cell.Data,
				})
			}
		}
	}

	return result, nil
}

func issueMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidOptionID):
		return "cell references an option that is not in the field definition"
	case errors.Is(err, model.ErrTooManyOptions):
		return "single-select cell holds more than one option"
	case errors.Is(err, model.ErrInvalidCheckboxValue):
		return "checkbox cell holds a value that is not a checkbox literal"
	default:
		return err.Error()
	}
}
