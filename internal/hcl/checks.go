package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/dvcheck/internal/config"
	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// parsedCheck is a check block whose body passed schema validation.
type parsedCheck struct {
	block    *checkBlock
	content  *hcl.BodyContent
	args     hcl.Attributes
	location string
}

// parseCheck validates the structure of a check block. Structural errors are
// fatal for the run.
func parseCheck(block *checkBlock) (*parsedCheck, hcl.Diagnostics) {
	content, diags := block.Body.Content(checkBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	pc := &parsedCheck{block: block, content: content, location: location(block.Body)}

	argBlock, blockDiags := findUniqueBlock(content.Blocks, "arguments")
	diags = append(diags, blockDiags...)
	if blockDiags.HasErrors() {
		return nil, diags
	}
	if argBlock != nil {
		attrs, attrDiags := argBlock.Body.JustAttributes()
		diags = append(diags, attrDiags...)
		if attrDiags.HasErrors() {
			return nil, diags
		}
		pc.args = attrs
	}
	return pc, diags
}

// location renders the start of body as "file:line".
func location(body hcl.Body) string {
	if sb, ok := body.(*hclsyntax.Body); ok {
		return fmt.Sprintf("%s:%d", sb.SrcRange.Filename, sb.SrcRange.Start.Line)
	}
	rng := body.MissingItemRange()
	return fmt.Sprintf("%s:%d", rng.Filename, rng.Start.Line)
}

// expand evaluates a parsed check into one config.Check per for_each
// instance. Evaluation errors are recorded on the affected check.
func (pc *parsedCheck) expand(ctx context.Context, evalCtx *hcl.EvalContext) []*config.Check {
	logger := ctxlog.FromContext(ctx).With("check", pc.block.Name, "location", pc.location)

	forEach, ok := pc.content.Attributes["for_each"]
	if !ok {
		return []*config.Check{pc.instance(pc.block.Name, evalCtx)}
	}

	keys, values, err := forEachInstances(forEach.Expr, evalCtx)
	if err != nil {
		logger.Debug("for_each could not be evaluated.", "error", err)
		c := pc.base(pc.block.Name)
		c.Err = err
		return []*config.Check{c}
	}

	logger.Debug("Expanding for_each.", "instances", len(keys))
	checks := make([]*config.Check, 0, len(keys))
	for i, key := range keys {
		name := fmt.Sprintf("%s[%s]", pc.block.Name, key)
		checks = append(checks, pc.instance(name, WithEach(evalCtx, cty.StringVal(key), values[i])))
	}
	return checks
}

// base returns a check carrying only the static parts of the block.
func (pc *parsedCheck) base(name string) *config.Check {
	return &config.Check{
		Rule:     pc.block.Rule,
		Name:     name,
		Enabled:  true,
		Location: pc.location,
	}
}

// instance evaluates the attributes and arguments of one check instance.
func (pc *parsedCheck) instance(name string, evalCtx *hcl.EvalContext) *config.Check {
	c := pc.base(name)
	var diags hcl.Diagnostics

	attrs := pc.content.Attributes
	if attr, ok := attrs["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, evalCtx, &c.Description)...)
	}
	if attr, ok := attrs["enabled"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, evalCtx, &c.Enabled)...)
	}
	if attr, ok := attrs["debug"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, evalCtx, &c.Debug)...)
	}

	c.Arguments = make(map[string]cty.Value, len(pc.args))
	for argName, attr := range pc.args {
		val, valDiags := attr.Expr.Value(evalCtx)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() {
			c.Arguments[argName] = val
		}
	}

	if diags.HasErrors() {
		c.Err = diags
	}
	return c
}

// forEachInstances evaluates a for_each expression.
func forEachInstances(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, []cty.Value, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, nil, diags
	}
	return ForEachInstances(val)
}

// ForEachInstances splits a for_each value into instance keys and values.
// Lists, tuples and sets of strings produce key == value with duplicates
// dropped; maps and objects produce their keys in lexical order.
func ForEachInstances(val cty.Value) ([]string, []cty.Value, error) {
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, nil, fmt.Errorf("for_each must be a known, non-null collection")
	}

	ty := val.Type()
	switch {
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var keys []string
		var values []cty.Value
		seen := make(map[string]struct{})
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.Type() != cty.String || elem.IsNull() {
				return nil, nil, fmt.Errorf("for_each list elements must be strings, got %s", elem.Type().FriendlyName())
			}
			key := elem.AsString()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
			values = append(values, elem)
		}
		return keys, values, nil
	case ty.IsMapType() || ty.IsObjectType():
		var keys []string
		var values []cty.Value
		// ElementIterator walks maps and objects in lexical key order.
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			keys = append(keys, k.AsString())
			values = append(values, v)
		}
		return keys, values, nil
	default:
		return nil, nil, fmt.Errorf("for_each must be a map, a set of strings, or a list of strings, got %s", ty.FriendlyName())
	}
}
