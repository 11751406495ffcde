package rules

import (
	"fmt"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/labels"
)

// IsEmpty flags rows where col is not blank.
func IsEmpty(ds *dataset.Dataset, col string) (Result, error) {
	cells, err := ds.Column(col)
	if err != nil {
		return Result{}, err
	}
	return collect(ds, func(r int) bool { return !cells[r].IsMissing() }), nil
}

// IsNonEmpty flags rows where col is blank.
func IsNonEmpty(ds *dataset.Dataset, col string) (Result, error) {
	cells, err := ds.Column(col)
	if err != nil {
		return Result{}, err
	}
	return collect(ds, func(r int) bool { return cells[r].IsMissing() }), nil
}

// IsNumber flags rows where col holds anything but decimal digits. Blank
// cells pass when blank is true.
func IsNumber(ds *dataset.Dataset, col string, blank bool) (Result, error) {
	cells, err := ds.Column(col)
	if err != nil {
		return Result{}, err
	}
	return collect(ds, func(r int) bool {
		if cells[r].IsMissing() {
			return !blank
		}
		return !cells[r].IsDigits()
	}), nil
}

// IsFloat flags rows where col does not parse as a floating-point number.
// Blank cells pass when blank is true.
func IsFloat(ds *dataset.Dataset, col string, blank bool) (Result, error) {
	cells, err := ds.Column(col)
	if err != nil {
		return Result{}, err
	}
	return collect(ds, func(r int) bool {
		if cells[r].IsMissing() {
			return !blank
		}
		_, err := cells[r].Float()
		return err != nil
	}), nil
}

// CheckRange flags rows whose col text is not a member of the range
// specification vrange. Blank cells pass when blank is true.
func CheckRange(ds *dataset.Dataset, col string, vrange []string, blank bool) (Result, error) {
	set, err := labels.ParseRange(vrange...)
	if err != nil {
		return Result{}, fmt.Errorf("range: %w", err)
	}
	cells, err := ds.Column(col)
	if err != nil {
		return Result{}, err
	}
	return collect(ds, func(r int) bool {
		text, ok := cells[r].Value()
		if !ok {
			return !blank
		}
		return !set.MatchText(text)
	}), nil
}

// IsIdentical flags rows where colA and colB differ. One blank side is a
// difference; two blank sides are identical.
func IsIdentical(ds *dataset.Dataset, colA, colB string) (Result, error) {
	cols, err := ds.Select(colA, colB)
	if err != nil {
		return Result{}, err
	}
	a, b := cols[0], cols[1]
	return collect(ds, func(r int) bool { return !a[r].Equal(b[r]) }), nil
}
