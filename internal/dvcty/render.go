package dvcty

import (
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Render formats a value for an invocation string. Top-level strings are
// printed bare, strings nested in collections are single-quoted, and null is
// printed as "null".
func Render(v cty.Value) string {
	var b strings.Builder
	render(&b, v, false)
	return b.String()
}

func render(b *strings.Builder, v cty.Value, nested bool) {
	switch {
	case !v.IsKnown():
		b.WriteString("(unknown)")
		return
	case v.IsNull():
		b.WriteString("null")
		return
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		if nested {
			b.WriteByte('\'')
			b.WriteString(v.AsString())
			b.WriteByte('\'')
		} else {
			b.WriteString(v.AsString())
		}
	case ty == cty.Number:
		b.WriteString(v.AsBigFloat().Text('f', -1))
	case ty == cty.Bool:
		if v.True() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		b.WriteByte('[')
		i := 0
		for it := v.ElementIterator(); it.Next(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			_, elem := it.Element()
			render(b, elem, true)
		}
		b.WriteByte(']')
	case ty.IsMapType() || ty.IsObjectType():
		m := v.AsValueMap()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('\'')
			b.WriteString(k)
			b.WriteString("': ")
			render(b, m[k], true)
		}
		b.WriteByte('}')
	default:
		b.WriteString(ty.FriendlyName())
	}
}
