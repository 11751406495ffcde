package rules

import "github.com/specialistvlad/dvcheck/internal/dataset"

// Result is the outcome of one rule evaluation.
type Result struct {
	Passed bool
	// Failing holds offending row ids in dataset order.
	Failing []string
	// Tallies is filled by checkbox rules, one entry per row.
	Tallies []CheckboxTally
	// Matches is filled by logic rules, one entry per row.
	Matches []LogicMatch
}

// CheckboxTally is the per-row aggregate computed by CheckCheckbox.
type CheckboxTally struct {
	RowID     string
	Options   float64
	Exclusive float64
	Total     float64
	// Blank is true when every involved cell of the row is missing.
	Blank bool
}

// LogicMatch is the per-row evaluation of a masking rule.
type LogicMatch struct {
	RowID string
	// Condition reports whether the controlling column matched its range.
	Condition bool
	// Satisfied reports whether the dependent column(s) passed.
	Satisfied bool
}

// collect builds a Result from a per-row failure predicate.
func collect(ds *dataset.Dataset, failed func(r int) bool) Result {
	var failing []string
	for r := 0; r < ds.Len(); r++ {
		if failed(r) {
			failing = append(failing, ds.ID(r))
		}
	}
	return Result{Passed: len(failing) == 0, Failing: failing}
}
