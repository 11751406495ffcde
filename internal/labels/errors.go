package labels

import (
	"errors"
	"fmt"
)

// MaxExpansion caps how many labels one "prefix:lo-hi" span may produce and
// how many values parse_range may list.
const MaxExpansion = 100_000

// ErrNoLabels is returned when ExpandLabels is called without tokens.
var ErrNoLabels = errors.New("at least one label is required")

// FormatError reports a token that is not valid in its notation.
type FormatError struct {
	Token  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid token %q: %s", e.Token, e.Reason)
}
