package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/dvcheck/internal/config"
	"github.com/specialistvlad/dvcheck/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL script loader.
func NewLoader() *Loader {
	return &Loader{}
}

// parsedFile is one script file after structural decoding.
type parsedFile struct {
	path   string
	root   fileRoot
	checks []*parsedCheck
}

// Load parses every file, evaluates the locals of all files together, then
// expands the checks in file and declaration order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	parser := hclparse.NewParser()
	files := make([]*parsedFile, 0, len(paths))
	var localBodies []hcl.Body

	for _, path := range paths {
		pf, err := l.parseFile(parser, path)
		if err != nil {
			return nil, err
		}
		for _, lb := range pf.root.Locals {
			localBodies = append(localBodies, lb.Body)
		}
		files = append(files, pf)
	}

	locals, diags := evalLocals(localBodies)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate locals: %w", diags)
	}
	evalCtx := NewEvalContext(locals)

	model := &config.Model{}
	for _, pf := range files {
		fileModel, err := l.translateFile(ctx, pf, evalCtx)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "files", len(files), "locals", len(locals), "checks", len(model.Checks))
	return model, nil
}

func (l *Loader) parseFile(parser *hclparse.Parser, path string) (*parsedFile, error) {
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	pf := &parsedFile{path: path}
	diags = gohcl.DecodeBody(file.Body, nil, &pf.root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	for _, block := range pf.root.Checks {
		pc, checkDiags := parseCheck(block)
		if checkDiags.HasErrors() {
			return nil, fmt.Errorf("invalid check %q in %s: %w", block.Name, path, checkDiags)
		}
		pf.checks = append(pf.checks, pc)
	}
	return pf, nil
}

func (l *Loader) translateFile(ctx context.Context, pf *parsedFile, evalCtx *hcl.EvalContext) (*config.Model, error) {
	model := &config.Model{}

	switch len(pf.root.Datasets) {
	case 0:
	case 1:
		model.Dataset = translateDataset(pf.root.Datasets[0], pf.path)
	default:
		return nil, fmt.Errorf("%s: only one dataset block is allowed", pf.path)
	}

	for _, pc := range pf.checks {
		model.Checks = append(model.Checks, pc.expand(ctx, evalCtx)...)
	}
	return model, nil
}

// translateDataset resolves a relative path against the script's directory.
func translateDataset(b *datasetBlock, scriptPath string) *config.Dataset {
	path := b.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(scriptPath), path)
	}
	return &config.Dataset{
		Path:       path,
		IDColumn:   b.IDColumn,
		Delimiter:  b.Delimiter,
		NullValues: b.NullValues,
		SourceFile: scriptPath,
	}
}
