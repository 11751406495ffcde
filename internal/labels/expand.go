package labels

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ExpandLabels resolves literal labels and "prefix:lo-hi" spans into a sorted,
// de-duplicated list. Labels are ordered by the integer that follows their
// leading letters, so "r2" sorts before "r10". Labels without such an integer
// sort after the numeric ones, alphabetically. A span may produce at most
// MaxExpansion labels.
func ExpandLabels(tokens ...string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, ErrNoLabels
	}

	seen := make(map[string]struct{})
	for _, token := range tokens {
		prefix, span, isSpan := strings.Cut(token, ":")
		if !isSpan {
			seen[token] = struct{}{}
			continue
		}
		if strings.Contains(span, ":") {
			return nil, &FormatError{Token: token, Reason: `expected "prefix:lo-hi"`}
		}
		lo, hi, err := parseLabelSpan(span)
		if err != nil {
			return nil, &FormatError{Token: token, Reason: err.Error()}
		}
		if lo > hi {
			continue
		}
		if hi-lo >= MaxExpansion {
			return nil, &FormatError{Token: token, Reason: fmt.Sprintf("span covers more than %d labels", MaxExpansion)}
		}
		for i := lo; ; i++ {
			seen[prefix+strconv.Itoa(i)] = struct{}{}
			if i == hi {
				break
			}
		}
	}

	out := make([]string, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessLabel(out[i], out[j])
	})
	return out, nil
}

var errSpanShape = errors.New(`span must be "lo-hi" with integer bounds`)

func parseLabelSpan(span string) (int, int, error) {
	parts := strings.Split(span, "-")
	if len(parts) != 2 {
		return 0, 0, errSpanShape
	}
	lo, err := atoi(parts[0])
	if err != nil {
		return 0, 0, errSpanShape
	}
	hi, err := atoi(parts[1])
	if err != nil {
		return 0, 0, errSpanShape
	}
	return lo, hi, nil
}

// numericSuffix strips the leading letters of label and parses the rest.
func numericSuffix(label string) (int, bool) {
	rest := strings.TrimLeftFunc(label, unicode.IsLetter)
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lessLabel(a, b string) bool {
	na, okA := numericSuffix(a)
	nb, okB := numericSuffix(b)
	switch {
	case okA && okB && na != nb:
		return na < nb
	case okA != okB:
		return okA
	default:
		return a < b
	}
}
