package dvcty

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter decodes script arguments into input structs.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeArguments populates input, a non-nil pointer to a struct described by
// fields, from args. Unknown argument names and missing required arguments are
// errors. A null value keeps the field's current value, so defaults set by the
// caller survive.
func (c *Converter) DecodeArguments(ctx context.Context, input any, fields []Field, args map[string]cty.Value) error {
	logger := ctxlog.FromContext(ctx)

	ptr := reflect.ValueOf(input)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("input must be a non-nil pointer to a struct, got %T", input)
	}
	structVal := ptr.Elem()

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
	}
	var unknown []string
	for name := range args {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unsupported argument(s) %s", quoteAll(unknown))
	}

	for _, f := range fields {
		val, provided := args[f.Name]
		if !provided {
			if !f.Optional {
				return fmt.Errorf("missing required argument %q", f.Name)
			}
			continue
		}
		if val.IsNull() {
			if !f.Optional {
				return fmt.Errorf("argument %q must not be null", f.Name)
			}
			logger.Debug("Argument is null, keeping default.", "argument", f.Name)
			continue
		}
		if !val.IsWhollyKnown() {
			return fmt.Errorf("argument %q has an unknown value", f.Name)
		}

		target := structVal.Field(f.Index).Addr().Interface()
		if err := c.decode(ctx, val, f.Type, target); err != nil {
			return fmt.Errorf("argument %q: %w", f.Name, err)
		}
	}
	return nil
}

// decode converts val to ty and stores it into target. A single primitive
// supplied where a list is expected is treated as a one-element list.
func (c *Converter) decode(ctx context.Context, val cty.Value, ty cty.Type, target any) error {
	logger := ctxlog.FromContext(ctx)

	if ty.IsListType() && val.Type().IsPrimitiveType() {
		logger.Debug("Wrapping single value into a list.", "type", val.Type().FriendlyName())
		val = cty.TupleVal([]cty.Value{val})
	}

	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}
	return gocty.FromCtyValue(converted, target)
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
