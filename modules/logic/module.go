// Package logic registers the cross-column masking rules.
package logic

import (
	"context"

	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/registry"
	"github.com/specialistvlad/dvcheck/internal/rules"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for check_logic. A null or absent cond2
// requires qid2 to be blank wherever cond1 matches.
type Input struct {
	QID1  string   `arg:"qid1"`
	Cond1 []string `arg:"cond1"`
	QID2  string   `arg:"qid2"`
	Cond2 []string `arg:"cond2,optional"`
}

// CheckboxInput defines the arguments for check_logic_checkbox.
type CheckboxInput struct {
	QID1    string   `arg:"qid1"`
	Cond1   []string `arg:"cond1"`
	QID2    string   `arg:"qid2"`
	Options []string `arg:"options"`
}

// OnCheckLogic is the handler for check_logic.
func OnCheckLogic(_ context.Context, ds *dataset.Dataset, in *Input) (rules.Result, error) {
	return rules.CheckLogic(ds, in.QID1, in.Cond1, in.QID2, in.Cond2)
}

// OnCheckLogicCheckbox is the handler for check_logic_checkbox.
func OnCheckLogicCheckbox(_ context.Context, ds *dataset.Dataset, in *CheckboxInput) (rules.Result, error) {
	return rules.CheckLogicCheckbox(ds, in.QID1, in.Cond1, in.QID2, in.Options)
}

// Register registers the handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	registry.Add(r, "check_logic",
		"Where qid1 is in cond1, qid2 is in cond2 (or blank when cond2 is null).",
		func() *Input { return new(Input) }, OnCheckLogic)
	registry.Add(r, "check_logic_checkbox",
		"Where qid1 is in cond1, at least one option of the qid2 group is answered.",
		func() *CheckboxInput { return new(CheckboxInput) }, OnCheckLogicCheckbox)
}
