// Package columns registers the single- and two-column rules: blank checks,
// numeric format checks, value ranges and column identity.
package columns

import (
	"context"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/specialistvlad/dvcheck/internal/rules"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ColumnInput addresses one column.
type ColumnInput struct {
	QID string `arg:"qid"`
}

// FormatInput addresses one column whose blank cells may be allowed.
type FormatInput struct {
	QID   string `arg:"qid"`
	Blank bool   `arg:"blank,optional"`
}

// RangeInput defines the arguments for check_range.
type RangeInput struct {
	QID    string   `arg:"qid"`
	VRange []string `arg:"vrange"`
	Blank  bool     `arg:"blank,optional"`
}

// PairInput addresses two columns.
type PairInput struct {
	QID1 string `arg:"qid1"`
	QID2 string `arg:"qid2"`
}

func newFormatInput() *FormatInput { return &FormatInput{Blank: true} }

func newRangeInput() *RangeInput { return &RangeInput{Blank: true} }

// Register registers the handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	registry.Add(r, "is_empty", "Every cell of the column is blank.",
		func() *ColumnInput { return new(ColumnInput) },
		func(_ context.Context, ds *dataset.Dataset, in *ColumnInput) (rules.Result, error) {
			return rules.IsEmpty(ds, in.QID)
		})

	registry.Add(r, "is_non_empty", "No cell of the column is blank.",
		func() *ColumnInput { return new(ColumnInput) },
		func(_ context.Context, ds *dataset.Dataset, in *ColumnInput) (rules.Result, error) {
			return rules.IsNonEmpty(ds, in.QID)
		})

	registry.Add(r, "is_number", "Every non-blank cell holds only decimal digits.",
		newFormatInput,
		func(_ context.Context, ds *dataset.Dataset, in *FormatInput) (rules.Result, error) {
			return rules.IsNumber(ds, in.QID, in.Blank)
		})

	registry.Add(r, "is_float", "Every non-blank cell parses as a floating-point number.",
		newFormatInput,
		func(_ context.Context, ds *dataset.Dataset, in *FormatInput) (rules.Result, error) {
			return rules.IsFloat(ds, in.QID, in.Blank)
		})

	registry.Add(r, "check_range", "Every non-blank cell is a member of the range.",
		newRangeInput,
		func(_ context.Context, ds *dataset.Dataset, in *RangeInput) (rules.Result, error) {
			return rules.CheckRange(ds, in.QID, in.VRange, in.Blank)
		})

	registry.Add(r, "is_identical", "Both columns hold the same value in every row.",
		func() *PairInput { return new(PairInput) },
		func(_ context.Context, ds *dataset.Dataset, in *PairInput) (rules.Result, error) {
			return rules.IsIdentical(ds, in.QID1, in.QID2)
		})
}
