package dvcty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		val  cty.Value
		want string
	}{
		{name: "string", val: cty.StringVal("Q1"), want: "Q1"},
		{name: "integer", val: cty.NumberIntVal(3), want: "3"},
		{name: "float", val: cty.NumberFloatVal(1.5), want: "1.5"},
		{name: "bool", val: cty.False, want: "false"},
		{name: "null", val: cty.NullVal(cty.String), want: "null"},
		{
			name: "list of strings",
			val:  cty.ListVal([]cty.Value{cty.StringVal("r:1-3"), cty.StringVal("r98")}),
			want: "['r:1-3', 'r98']",
		},
		{
			name: "mixed tuple",
			val:  cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.StringVal("3-5")}),
			want: "[1, '3-5']",
		},
		{name: "empty list", val: cty.ListValEmpty(cty.String), want: "[]"},
		{
			name: "object",
			val:  cty.ObjectVal(map[string]cty.Value{"b": cty.True, "a": cty.StringVal("x")}),
			want: "{'a': 'x', 'b': true}",
		},
		{name: "unknown", val: cty.UnknownVal(cty.String), want: "(unknown)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Render(tc.val))
		})
	}
}
