// Package checkbox registers the checkbox-group cardinality rule.
package checkbox

import (
	"context"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/specialistvlad/dvcheck/internal/rules"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for check_checkbox.
type Input struct {
	QID       string   `arg:"qid"`
	Options   []string `arg:"options"`
	Exclusive []string `arg:"exclusive,optional"`
	AtLeast   int      `arg:"atleast,optional"`
	AtMost    int      `arg:"atmost,optional"`
	Blank     bool     `arg:"blank,optional"`
}

// NewInput returns an Input with the rule defaults.
func NewInput() *Input {
	d := rules.NewCheckbox("")
	return &Input{AtLeast: d.AtLeast, AtMost: d.AtMost, Blank: d.Blank}
}

// OnCheckCheckbox is the handler for check_checkbox.
func OnCheckCheckbox(_ context.Context, ds *dataset.Dataset, in *Input) (rules.Result, error) {
	return rules.CheckCheckbox(ds, rules.Checkbox{
		QID:       in.QID,
		Options:   in.Options,
		Exclusive: in.Exclusive,
		AtLeast:   in.AtLeast,
		AtMost:    in.AtMost,
		Blank:     in.Blank,
	})
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	registry.Add(r, "check_checkbox",
		"The number of selected options is within bounds and exclusive options stand alone.",
		NewInput, OnCheckCheckbox)
}
