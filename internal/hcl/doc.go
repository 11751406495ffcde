// Package hcl provides the HCL implementation of the config.Loader interface.
// It parses validation scripts, evaluates `locals`, expands `for_each` and
// evaluates each check's `arguments` block into cty values.
//
// The functions available to scripts, and the evaluation context built around
// them, are exported so other script formats can evaluate HCL templates the
// same way.
package hcl
