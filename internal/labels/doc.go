// Package labels implements the two small notations validation scripts use to
// describe groups of values and columns.
//
// Range specifications select integer answer codes:
//
//	ParseRange("1", "3-5") // {1, 3, 4, 5}
//
// Label specifications generate column suffixes for checkbox and grid
// questions:
//
//	ExpandLabels("r:1-3", "r98") // [r1 r2 r3 r98]
//
// Both are pure: the same tokens always resolve to the same result.
package labels
