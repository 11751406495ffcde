package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// evalLocals evaluates every attribute of the given locals bodies. Locals may
// refer to each other in any order; references are resolved by repeated
// passes until no attribute makes progress.
func evalLocals(bodies []hcl.Body) (map[string]cty.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	pending := make(map[string]*hcl.Attribute)

	for _, body := range bodies {
		attrs, attrDiags := body.JustAttributes()
		diags = append(diags, attrDiags...)
		for name, attr := range attrs {
			if prev, dup := pending[name]; dup {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate local value",
					Detail:   fmt.Sprintf("Local %q was already defined at %s.", name, prev.NameRange),
					Subject:  attr.NameRange.Ptr(),
				})
				continue
			}
			pending[name] = attr
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	values := make(map[string]cty.Value, len(pending))
	for len(pending) > 0 {
		progressed := false
		for _, name := range sortedNames(pending) {
			attr := pending[name]
			if !localsReady(attr.Expr, values) {
				continue
			}
			val, valDiags := attr.Expr.Value(NewEvalContext(values))
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				return nil, diags
			}
			values[name] = val
			delete(pending, name)
			progressed = true
		}
		if !progressed {
			for _, name := range sortedNames(pending) {
				attr := pending[name]
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unresolvable local value",
					Detail:   fmt.Sprintf("Local %q refers to a local that is undefined or part of a cycle.", name),
					Subject:  attr.Expr.Range().Ptr(),
				})
			}
			return nil, diags
		}
	}
	return values, diags
}

// localsReady reports whether every local.X referenced by expr is known.
func localsReady(expr hcl.Expression, values map[string]cty.Value) bool {
	for _, traversal := range expr.Variables() {
		if traversal.RootName() != "local" || len(traversal) < 2 {
			continue
		}
		attr, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			continue
		}
		if _, ok := values[attr.Name]; !ok {
			return false
		}
	}
	return true
}

func sortedNames(m map[string]*hcl.Attribute) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
