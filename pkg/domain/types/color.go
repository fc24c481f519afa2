package types

import "github.com/m-mizutani/goerr/v2"

// SelectOptionColor is the presentation color of a select option
type SelectOptionColor string

const (
	SelectOptionColorPurple    SelectOptionColor = "purple"
	SelectOptionColorPink      SelectOptionColor = "pink"
	SelectOptionColorLightPink SelectOptionColor = "light-pink"
	SelectOptionColorOrange    SelectOptionColor = "orange"
	SelectOptionColorYellow    SelectOptionColor = "yellow"
	SelectOptionColorLime      SelectOptionColor = "lime"
	SelectOptionColorGreen     SelectOptionColor = "green"
	SelectOptionColorAqua      SelectOptionColor = "aqua"
	SelectOptionColorBlue      SelectOptionColor = "blue"
)

// AllSelectOptionColors returns the color palette in rotation order
func AllSelectOptionColors() []SelectOptionColor {
	return []SelectOptionColor{
		SelectOptionColorPurple,
		SelectOptionColorPink,
		SelectOptionColorLightPink,
		SelectOptionColorOrange,
		SelectOptionColorYellow,
		SelectOptionColorLime,
		SelectOptionColorGreen,
		SelectOptionColorAqua,
		SelectOptionColorBlue,
	}
}

// IsValid checks if the color is part of the palette
func (c SelectOptionColor) IsValid() bool {
	for _, known := range AllSelectOptionColors() {
		if c == known {
			return true
		}
	}
	return false
}

// NextSelectOptionColor returns the palette color following the given number
// of existing options, wrapping around.
func NextSelectOptionColor(existing int) SelectOptionColor {
	palette := AllSelectOptionColors()
	if existing < 0 {
		existing = 0
	}
	return palette[existing%len(palette)]
}

// ParseSelectOptionColor parses a string into a SelectOptionColor. Empty
// strings resolve to the first palette color.
func ParseSelectOptionColor(s string) (SelectOptionColor, error) {
	if s == "" {
		return SelectOptionColorPurple, nil
	}
	c := SelectOptionColor(s)
	if !c.IsValid() {
		return "", goerr.Wrap(ErrInvalidData, "unknown select option color", goerr.V(ColorKey, s))
	}
	return c, nil
}

func (c SelectOptionColor) String() string {
	return string(c)
}
