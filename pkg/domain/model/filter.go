package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// FilterID is the unique identifier of a stored filter
type FilterID string

// NewFilterID generates a new filter ID
func NewFilterID() FilterID {
	return FilterID(uuid.New().String())
}

func (id FilterID) String() string {
	return string(id)
}

// FilterRevision is a filter as persisted. Condition holds the raw condition
// code; for select filters Content holds the reference option IDs in the
// persisted cell form.
type FilterRevision struct {
	ID        FilterID        `json:"id"`
	FieldID   string          `json:"field_id"`
	FieldType types.FieldType `json:"field_type"`
	Condition uint8           `json:"condition"`
	Content   string          `json:"content,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Copy returns a copy of the revision
func (r *FilterRevision) Copy() *FilterRevision {
	if r == nil {
		return nil
	}
	copied := *r
	return &copied
}

// CheckboxFilter matches checkbox cells by their checked state
type CheckboxFilter struct {
	Condition types.CheckboxCondition
}

// NewCheckboxFilter loads a checkbox filter from its revision. An unknown
// condition code falls back to IsChecked.
func NewCheckboxFilter(rev *FilterRevision) CheckboxFilter {
	condition, err := types.CheckboxConditionFrom(rev.Condition)
	if err != nil {
		condition = types.CheckboxConditionIsChecked
	}
	return CheckboxFilter{Condition: condition}
}

// Apply reports whether the cell matches the filter
func (f CheckboxFilter) Apply(data CheckboxCellData) bool {
	isCheck := data.IsCheck()
	switch f.Condition {
	case types.CheckboxConditionIsUnChecked:
		return !isCheck
	default:
		return isCheck
	}
}

// SelectOptionFilter matches select cells against a set of reference options
type SelectOptionFilter struct {
	Condition types.SelectOptionCondition
	OptionIDs SelectOptionIDs
}

// NewSelectOptionFilter loads a select option filter from its revision. An
// unknown condition code falls back to OptionIs.
func NewSelectOptionFilter(rev *FilterRevision) SelectOptionFilter {
	condition, err := types.SelectOptionConditionFrom(rev.Condition)
	if err != nil {
		condition = types.SelectOptionConditionOptionIs
	}
	return SelectOptionFilter{
		Condition: condition,
		OptionIDs: ParseSelectOptionIDs(rev.Content),
	}
}

// Apply reports whether the selected options match the filter. A filter
// without reference options matches every cell for the conditions that
// compare against references.
func (f SelectOptionFilter) Apply(selected SelectedSelectOptions) bool {
	switch f.Condition {
	case types.SelectOptionConditionOptionIsEmpty:
		return selected.IsEmpty()

	case types.SelectOptionConditionOptionIsNotEmpty:
		return !selected.IsEmpty()

	case types.SelectOptionConditionOptionIsNot:
		for _, id := range f.OptionIDs {
			if selected.Has(id) {
				return false
			}
		}
		return true

	case types.SelectOptionConditionOptionContainsAny:
		if len(f.OptionIDs) == 0 {
			return true
		}
		for _, id := range f.OptionIDs {
			if selected.Has(id) {
				return true
			}
		}
		return false

	default:
		for _, id := range f.OptionIDs {
			if !selected.Has(id) {
				return false
			}
		}
		return true
	}
}
