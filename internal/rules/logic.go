package rules

import (
	"fmt"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/labels"
)

// CheckLogic enforces a masking rule: wherever colA's value is in the range
// condA, colB's value must be in the range condB. A nil condB means colB
// must be blank there instead.
func CheckLogic(ds *dataset.Dataset, colA string, condA []string, colB string, condB []string) (Result, error) {
	setA, err := labels.ParseRange(condA...)
	if err != nil {
		return Result{}, fmt.Errorf("cond1: %w", err)
	}

	requireBlank := condB == nil
	var setB labels.RangeSet
	if !requireBlank {
		setB, err = labels.ParseRange(condB...)
		if err != nil {
			return Result{}, fmt.Errorf("cond2: %w", err)
		}
	}

	cols, err := ds.Select(colA, colB)
	if err != nil {
		return Result{}, err
	}
	a, b := cols[0], cols[1]

	res := Result{Matches: make([]LogicMatch, 0, ds.Len())}
	for r := 0; r < ds.Len(); r++ {
		m := LogicMatch{RowID: ds.ID(r), Condition: inRange(setA, a[r])}
		if requireBlank {
			m.Satisfied = b[r].IsMissing()
		} else {
			m.Satisfied = inRange(setB, b[r])
		}
		res.Matches = append(res.Matches, m)
		if m.Condition && !m.Satisfied {
			res.Failing = append(res.Failing, m.RowID)
		}
	}
	res.Passed = len(res.Failing) == 0
	return res, nil
}

// CheckLogicCheckbox flags rows where colA's value is in the range condA but
// none of the checkbox columns qid+label (labels from options) is answered.
func CheckLogicCheckbox(ds *dataset.Dataset, colA string, condA []string, qid string, options []string) (Result, error) {
	setA, err := labels.ParseRange(condA...)
	if err != nil {
		return Result{}, fmt.Errorf("cond1: %w", err)
	}
	optionLabels, err := labels.ExpandLabels(options...)
	if err != nil {
		return Result{}, fmt.Errorf("options: %w", err)
	}

	names := make([]string, len(optionLabels))
	for i, label := range optionLabels {
		names[i] = qid + label
	}
	boxes, err := ds.Select(names...)
	if err != nil {
		return Result{}, err
	}
	a, err := ds.Column(colA)
	if err != nil {
		return Result{}, err
	}

	res := Result{Matches: make([]LogicMatch, 0, ds.Len())}
	for r := 0; r < ds.Len(); r++ {
		_, allMissing, err := sumRow(ds, r, names, boxes)
		if err != nil {
			return Result{}, err
		}
		m := LogicMatch{RowID: ds.ID(r), Condition: inRange(setA, a[r]), Satisfied: !allMissing}
		res.Matches = append(res.Matches, m)
		if m.Condition && !m.Satisfied {
			res.Failing = append(res.Failing, m.RowID)
		}
	}
	res.Passed = len(res.Failing) == 0
	return res, nil
}

func inRange(set labels.RangeSet, cell dataset.Cell) bool {
	text, ok := cell.Value()
	return ok && set.MatchText(text)
}
