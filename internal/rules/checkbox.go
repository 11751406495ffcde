package rules

import (
	"fmt"
	"math"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/labels"
)

// NoLimit leaves the upper selection bound of a checkbox group open.
const NoLimit = math.MaxInt

// Checkbox describes a group of 0/1 columns named QID+label.
type Checkbox struct {
	QID string
	// Options is a label specification for every option of the group.
	Options []string
	// Exclusive is a label specification for options that may not be
	// combined with any other option ("none of the above").
	Exclusive []string
	AtLeast   int
	AtMost    int
	// Blank skips rows where every column of the group is missing.
	Blank bool
}

// NewCheckbox returns a group requiring at least one selection, with no upper
// bound and blank rows skipped.
func NewCheckbox(qid string, options ...string) Checkbox {
	return Checkbox{
		QID:     qid,
		Options: options,
		AtLeast: 1,
		AtMost:  NoLimit,
		Blank:   true,
	}
}

// CheckCheckbox flags rows whose number of selected options falls outside
// [AtLeast, AtMost], rows selecting more than one exclusive option, and rows
// combining an exclusive option with a regular one.
func CheckCheckbox(ds *dataset.Dataset, spec Checkbox) (Result, error) {
	optionCols, exclusiveCols, err := checkboxColumns(spec)
	if err != nil {
		return Result{}, err
	}
	options, err := ds.Select(optionCols...)
	if err != nil {
		return Result{}, err
	}
	exclusive, err := ds.Select(exclusiveCols...)
	if err != nil {
		return Result{}, err
	}

	res := Result{Tallies: make([]CheckboxTally, 0, ds.Len())}
	for r := 0; r < ds.Len(); r++ {
		osum, oMissing, err := sumRow(ds, r, optionCols, options)
		if err != nil {
			return Result{}, err
		}
		esum, eMissing, err := sumRow(ds, r, exclusiveCols, exclusive)
		if err != nil {
			return Result{}, err
		}

		tally := CheckboxTally{
			RowID:     ds.ID(r),
			Options:   osum,
			Exclusive: esum,
			Total:     osum + esum,
			Blank:     oMissing && eMissing,
		}
		res.Tallies = append(res.Tallies, tally)

		if spec.Blank && tally.Blank {
			continue
		}
		invalid := tally.Total < float64(spec.AtLeast) ||
			(spec.AtMost != NoLimit && tally.Total > float64(spec.AtMost)) ||
			esum > 1 ||
			(osum > 0 && esum > 0)
		if invalid {
			res.Failing = append(res.Failing, tally.RowID)
		}
	}
	res.Passed = len(res.Failing) == 0
	return res, nil
}

// checkboxColumns expands the option and exclusive label specifications
// into column names. Exclusive labels are removed from the regular options.
func checkboxColumns(spec Checkbox) ([]string, []string, error) {
	optionLabels, err := labels.ExpandLabels(spec.Options...)
	if err != nil {
		return nil, nil, fmt.Errorf("options: %w", err)
	}

	var exclusiveLabels []string
	if len(spec.Exclusive) > 0 {
		exclusiveLabels, err = labels.ExpandLabels(spec.Exclusive...)
		if err != nil {
			return nil, nil, fmt.Errorf("exclusive: %w", err)
		}
	}

	isExclusive := make(map[string]struct{}, len(exclusiveLabels))
	exclusiveCols := make([]string, 0, len(exclusiveLabels))
	for _, label := range exclusiveLabels {
		isExclusive[label] = struct{}{}
		exclusiveCols = append(exclusiveCols, spec.QID+label)
	}

	optionCols := make([]string, 0, len(optionLabels))
	for _, label := range optionLabels {
		if _, ok := isExclusive[label]; ok {
			continue
		}
		optionCols = append(optionCols, spec.QID+label)
	}
	return optionCols, exclusiveCols, nil
}

// sumRow adds the numeric values of row r across cols, skipping missing
// cells. allMissing is true when no cell of the row is present.
func sumRow(ds *dataset.Dataset, r int, names []string, cols [][]dataset.Cell) (sum float64, allMissing bool, err error) {
	allMissing = true
	for i, col := range cols {
		cell := col[r]
		if cell.IsMissing() {
			continue
		}
		allMissing = false
		v, err := cell.Float()
		if err != nil {
			return 0, false, fmt.Errorf("column %q, row %s: %w", names[i], ds.ID(r), err)
		}
		sum += v
	}
	return sum, allMissing, nil
}
