package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/dvcheck/internal/labels"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// ExpandLabelsFunc exposes labels.ExpandLabels as expand_labels(tokens...).
var ExpandLabelsFunc = function.New(&function.Spec{
	Description: "Expands labels and prefix:lo-hi spans into a sorted list.",
	VarParam: &function.Parameter{
		Name: "tokens",
		Type: cty.String,
	},
	Type: function.StaticReturnType(cty.List(cty.String)),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		out, err := labels.ExpandLabels(stringArgs(args)...)
		if err != nil {
			return cty.NilVal, err
		}
		return stringList(out), nil
	},
})

// ParseRangeFunc exposes labels.ParseRange as parse_range(tokens...).
var ParseRangeFunc = function.New(&function.Spec{
	Description: "Resolves n and lo-hi tokens into a sorted list of numbers rendered as strings.",
	VarParam: &function.Parameter{
		Name: "tokens",
		Type: cty.String,
	},
	Type: function.StaticReturnType(cty.List(cty.String)),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		set, err := labels.ParseRange(stringArgs(args)...)
		if err != nil {
			return cty.NilVal, err
		}
		if n := set.Len(); n > labels.MaxExpansion {
			return cty.NilVal, fmt.Errorf("range holds %d values, more than the %d parse_range can list", n, labels.MaxExpansion)
		}
		return stringList(set.Strings()), nil
	},
})

func stringArgs(args []cty.Value) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.AsString()
	}
	return out
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	out := make([]cty.Value, len(values))
	for i, v := range values {
		out[i] = cty.StringVal(v)
	}
	return cty.ListVal(out)
}

// Functions returns the functions available to validation scripts.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"expand_labels": ExpandLabelsFunc,
		"parse_range":   ParseRangeFunc,
		"concat":        stdlib.ConcatFunc,
		"format":        stdlib.FormatFunc,
		"upper":         stdlib.UpperFunc,
		"lower":         stdlib.LowerFunc,
		"join":          stdlib.JoinFunc,
		"length":        stdlib.LengthFunc,
	}
}

// NewEvalContext builds the root evaluation context. locals may be nil.
func NewEvalContext(locals map[string]cty.Value) *hcl.EvalContext {
	vars := map[string]cty.Value{}
	if locals != nil {
		vars["local"] = cty.ObjectVal(locals)
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: Functions(),
	}
}

// WithEach returns a child context exposing each.key and each.value.
func WithEach(parent *hcl.EvalContext, key, value cty.Value) *hcl.EvalContext {
	child := parent.NewChild()
	child.Variables = map[string]cty.Value{
		"each": cty.ObjectVal(map[string]cty.Value{
			"key":   key,
			"value": value,
		}),
	}
	return child
}
