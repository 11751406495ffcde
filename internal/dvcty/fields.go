package dvcty

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TagName is the struct tag holding argument names.
const TagName = "arg"

// Field describes one script argument of an input struct.
type Field struct {
	Name     string
	Index    int
	Optional bool
	// Type is the cty type implied by the Go field.
	Type cty.Type
}

// Fields inspects a struct type (or pointer to one) and returns its argument
// fields in declaration order. Every exported field must carry an `arg` tag
// and map to a cty type.
func Fields(t reflect.Type) ([]Field, error) {
	if t == nil {
		return nil, fmt.Errorf("input type is nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input type %s is not a struct", t)
	}

	var (
		fields []Field
		errs   []string
		seen   = make(map[string]string)
	)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, ok := sf.Tag.Lookup(TagName)
		if !ok || tag == "" {
			errs = append(errs, fmt.Sprintf("field %s has no %q tag", sf.Name, TagName))
			continue
		}
		parts := strings.Split(tag, ",")
		name := parts[0]
		if name == "-" {
			continue
		}

		f := Field{Name: name, Index: i}
		for _, opt := range parts[1:] {
			switch opt {
			case "optional":
				f.Optional = true
			default:
				errs = append(errs, fmt.Sprintf("field %s: unknown tag option %q", sf.Name, opt))
			}
		}

		if prev, dup := seen[name]; dup {
			errs = append(errs, fmt.Sprintf("fields %s and %s share argument name %q", prev, sf.Name, name))
			continue
		}
		seen[name] = sf.Name

		ty, err := gocty.ImpliedType(reflect.Zero(sf.Type).Interface())
		if err != nil {
			errs = append(errs, fmt.Sprintf("field %s: cannot imply cty type from %s: %v", sf.Name, sf.Type, err))
			continue
		}
		f.Type = ty
		fields = append(fields, f)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("input type %s: %s", t, strings.Join(errs, "; "))
	}
	return fields, nil
}
