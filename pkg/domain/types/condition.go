package types

import "github.com/m-mizutani/goerr/v2"

// CheckboxCondition is the comparison mode of a checkbox filter. Stored filter
// revisions encode it as a small unsigned integer.
type CheckboxCondition uint8

const (
	CheckboxConditionIsChecked   CheckboxCondition = 0
	CheckboxConditionIsUnChecked CheckboxCondition = 1
)

// CheckboxConditionFrom decodes a stored condition code. Codes outside the
// known range fail with ErrInvalidData.
func CheckboxConditionFrom(v uint8) (CheckboxCondition, error) {
	switch c := CheckboxCondition(v); c {
	case CheckboxConditionIsChecked, CheckboxConditionIsUnChecked:
		return c, nil
	default:
		return 0, goerr.Wrap(ErrInvalidData, "unknown checkbox condition", goerr.V(ConditionKey, v))
	}
}

func (c CheckboxCondition) String() string {
	switch c {
	case CheckboxConditionIsChecked:
		return "is-checked"
	case CheckboxConditionIsUnChecked:
		return "is-unchecked"
	default:
		return "unknown"
	}
}

// SelectOptionCondition is the comparison mode of a select option filter
type SelectOptionCondition uint8

const (
	// SelectOptionConditionOptionIs matches cells holding every reference option
	SelectOptionConditionOptionIs SelectOptionCondition = 0

	// SelectOptionConditionOptionIsNot matches cells holding none of the reference options
	SelectOptionConditionOptionIsNot SelectOptionCondition = 1

	SelectOptionConditionOptionIsEmpty    SelectOptionCondition = 2
	SelectOptionConditionOptionIsNotEmpty SelectOptionCondition = 3

	// SelectOptionConditionOptionContainsAny matches cells holding at least one reference option
	SelectOptionConditionOptionContainsAny SelectOptionCondition = 4
)

// AllSelectOptionConditions returns all select option conditions in code order
func AllSelectOptionConditions() []SelectOptionCondition {
	return []SelectOptionCondition{
		SelectOptionConditionOptionIs,
		SelectOptionConditionOptionIsNot,
		SelectOptionConditionOptionIsEmpty,
		SelectOptionConditionOptionIsNotEmpty,
		SelectOptionConditionOptionContainsAny,
	}
}

// SelectOptionConditionFrom decodes a stored condition code. Codes outside the
// known range fail with ErrInvalidData.
func SelectOptionConditionFrom(v uint8) (SelectOptionCondition, error) {
	c := SelectOptionCondition(v)
	if c > SelectOptionConditionOptionContainsAny {
		return 0, goerr.Wrap(ErrInvalidData, "unknown select option condition", goerr.V(ConditionKey, v))
	}
	return c, nil
}

func (c SelectOptionCondition) String() string {
	switch c {
	case SelectOptionConditionOptionIs:
		return "option-is"
	case SelectOptionConditionOptionIsNot:
		return "option-is-not"
	case SelectOptionConditionOptionIsEmpty:
		return "option-is-empty"
	case SelectOptionConditionOptionIsNotEmpty:
		return "option-is-not-empty"
	case SelectOptionConditionOptionContainsAny:
		return "option-contains-any"
	default:
		return "unknown"
	}
}
