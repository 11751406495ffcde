package yamlcfg

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// evaluator turns YAML nodes into cty values. Strings are parsed as HCL
// templates and evaluated in evalCtx.
type evaluator struct {
	filename string
	evalCtx  *hcl.EvalContext
}

func (e *evaluator) value(node *yaml.Node) (cty.Value, error) {
	switch node.Kind {
	case 0:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		return e.value(node.Content[0])
	case yaml.AliasNode:
		return e.value(node.Alias)
	case yaml.ScalarNode:
		return e.scalar(node)
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(node.Content))
		for i, child := range node.Content {
			v, err := e.value(child)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = v
		}
		return cty.TupleVal(elems), nil
	case yaml.MappingNode:
		attrs, err := e.mapping(node)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("%s:%d: unsupported YAML node", e.filename, node.Line)
	}
}

// mapping evaluates every value of a mapping node.
func (e *evaluator) mapping(node *yaml.Node) (map[string]cty.Value, error) {
	attrs := make(map[string]cty.Value, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		v, err := e.value(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		attrs[key] = v
	}
	return attrs, nil
}

func (e *evaluator) scalar(node *yaml.Node) (cty.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(b), nil
	case "!!int", "!!float":
		v, err := cty.ParseNumberVal(node.Value)
		if err != nil {
			// YAML accepts 0x and 0o integers, cty does not.
			n, ierr := strconv.ParseInt(node.Value, 0, 64)
			if ierr != nil {
				return cty.NilVal, fmt.Errorf("%s:%d: invalid number %q", e.filename, node.Line, node.Value)
			}
			return cty.NumberIntVal(n), nil
		}
		return v, nil
	default:
		return e.template(node)
	}
}

func (e *evaluator) template(node *yaml.Node) (cty.Value, error) {
	start := hcl.Pos{Line: node.Line, Column: node.Column, Byte: 0}
	expr, diags := hclsyntax.ParseTemplate([]byte(node.Value), e.filename, start)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	v, diags := expr.Value(e.evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return v, nil
}
