package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrMissing is returned by conversions on a missing cell.
var ErrMissing = errors.New("cell is missing")

// Cell is a single nullable string value.
type Cell struct {
	text    string
	present bool
}

// Missing returns a cell with no value.
func Missing() Cell {
	return Cell{}
}

// Text returns a cell holding s. An empty string is still a present value.
func Text(s string) Cell {
	return Cell{text: s, present: true}
}

// IsMissing reports whether the cell has no value.
func (c Cell) IsMissing() bool {
	return !c.present
}

// Value returns the cell text and whether it is present.
func (c Cell) Value() (string, bool) {
	return c.text, c.present
}

// String renders missing cells as an empty string.
func (c Cell) String() string {
	return c.text
}

// Equal reports whether both cells are missing or both hold the same text.
func (c Cell) Equal(other Cell) bool {
	if c.present != other.present {
		return false
	}
	return c.text == other.text
}

// IsDigits reports whether the cell is present, non-empty and made only of
// decimal digits.
func (c Cell) IsDigits() bool {
	if !c.present || c.text == "" {
		return false
	}
	for _, r := range c.text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Float parses the cell as a floating-point number. Surrounding whitespace is
// ignored.
func (c Cell) Float() (float64, error) {
	if !c.present {
		return 0, ErrMissing
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not numeric: %w", c.text, err)
	}
	return f, nil
}
