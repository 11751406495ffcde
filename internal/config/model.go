package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of one or more
// validation scripts.
type Model struct {
	Dataset *Dataset
	Checks  []*Check
}

// Dataset is the optional `dataset` section of a script. Paths are resolved
// relative to the script that declared them.
type Dataset struct {
	Path       string
	IDColumn   string
	Delimiter  string
	NullValues []string
	SourceFile string
}

// Check is one rule invocation. Checks expanded from for_each carry the
// instance key in their Name, e.g. "q7_grid[r1]".
type Check struct {
	Rule        string
	Name        string
	Description string
	Enabled     bool
	Debug       bool
	Arguments   map[string]cty.Value
	// Location is "file:line" of the declaration.
	Location string
	// Err records an evaluation error; the check is reported as a fault.
	Err error
}

// Merge appends other's checks to m. At most one script may declare a
// dataset section.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if other.Dataset != nil {
		if m.Dataset != nil {
			return fmt.Errorf("dataset declared twice: in %s and %s", m.Dataset.SourceFile, other.Dataset.SourceFile)
		}
		m.Dataset = other.Dataset
	}
	m.Checks = append(m.Checks, other.Checks...)
	return nil
}

// ValidateNames reports checks sharing a name.
func (m *Model) ValidateNames() error {
	seen := make(map[string]string, len(m.Checks))
	for _, c := range m.Checks {
		if prev, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate check name %q at %s (first declared at %s)", c.Name, c.Location, prev)
		}
		seen[c.Name] = c.Location
	}
	return nil
}
