package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all top-level blocks of a script file.
type fileRoot struct {
	Datasets []*datasetBlock `hcl:"dataset,block"`
	Locals   []*localsBlock  `hcl:"locals,block"`
	Checks   []*checkBlock   `hcl:"check,block"`
}

// datasetBlock holds literal settings only; it is decoded without variables.
type datasetBlock struct {
	Path       string   `hcl:"path,optional"`
	IDColumn   string   `hcl:"id_column,optional"`
	Delimiter  string   `hcl:"delimiter,optional"`
	NullValues []string `hcl:"null_values,optional"`
}

type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type checkBlock struct {
	Rule string   `hcl:"rule,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var checkBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "enabled"},
		{Name: "debug"},
		{Name: "for_each"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "arguments"},
	},
}

// findUniqueBlock returns the only block of the given type, or nil. More than
// one block of that type is an error.
func findUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + name + "\" block",
				Detail:   "Only one \"" + name + "\" block is allowed.",
				Subject:  &block.DefRange,
			})
		}
		found = block
	}
	return found, diags
}
