package labels

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// RangeSet is a resolved range specification, stored as sorted,
// non-overlapping inclusive intervals.
type RangeSet struct {
	spans []span
}

type span struct {
	lo, hi int
}

// ParseRange resolves tokens of the form "n" or "lo-hi" (inclusive) into a
// set of integers. A span with lo > hi contributes nothing.
func ParseRange(tokens ...string) (RangeSet, error) {
	spans := make([]span, 0, len(tokens))
	for _, token := range tokens {
		lo, hi, err := parseSpan(token)
		if err != nil {
			return RangeSet{}, err
		}
		if lo > hi {
			continue
		}
		spans = append(spans, span{lo: lo, hi: hi})
	}
	return RangeSet{spans: mergeSpans(spans)}, nil
}

// mergeSpans sorts spans and joins overlapping or adjacent ones.
func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	merged := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.lo <= last.hi || (last.hi < math.MaxInt && sp.lo == last.hi+1) {
			last.hi = max(last.hi, sp.hi)
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// parseSpan accepts "n" (returned as n..n) or "lo-hi".
func parseSpan(token string) (int, int, error) {
	parts := strings.Split(token, "-")
	switch len(parts) {
	case 1:
		v, err := atoi(parts[0])
		if err != nil {
			return 0, 0, &FormatError{Token: token, Reason: "not an integer"}
		}
		return v, v, nil
	case 2:
		lo, err := atoi(parts[0])
		if err != nil {
			return 0, 0, &FormatError{Token: token, Reason: "span start is not an integer"}
		}
		hi, err := atoi(parts[1])
		if err != nil {
			return 0, 0, &FormatError{Token: token, Reason: "span end is not an integer"}
		}
		return lo, hi, nil
	default:
		return 0, 0, &FormatError{Token: token, Reason: `expected "n" or "lo-hi"`}
	}
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// Len returns the number of values in the set, capped at math.MaxInt.
func (s RangeSet) Len() int {
	n := 0
	for _, sp := range s.spans {
		width := sp.hi - sp.lo
		if width == math.MaxInt || n > math.MaxInt-width-1 {
			return math.MaxInt
		}
		n += width + 1
	}
	return n
}

// Contains reports whether v is in the set.
func (s RangeSet) Contains(v int) bool {
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].hi >= v })
	return i < len(s.spans) && s.spans[i].lo <= v
}

// Values returns the members in ascending order. Check Len first: a set
// parsed from a wide span holds that many values.
func (s RangeSet) Values() []int {
	out := make([]int, 0, min(s.Len(), MaxExpansion))
	for _, sp := range s.spans {
		for v := sp.lo; ; v++ {
			out = append(out, v)
			if v == sp.hi {
				break
			}
		}
	}
	return out
}

// Strings returns the members in ascending order as decimal strings.
func (s RangeSet) Strings() []string {
	values := s.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// MatchText reports whether text is exactly the decimal form of a member.
// Cells are compared as text, so "01" and " 1" do not match 1.
func (s RangeSet) MatchText(text string) bool {
	v, err := strconv.Atoi(text)
	if err != nil || strconv.Itoa(v) != text {
		return false
	}
	return s.Contains(v)
}
