package yamlcfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/specialistvlad/dvcheck/internal/config"
	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/specialistvlad/dvcheck/internal/hcl"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML script loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every file in order. Locals are scoped to the file declaring them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := &config.Model{}
	for _, path := range paths {
		fileModel, err := l.loadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
	}

	logger.Debug("YAML loading complete.", "files", len(paths), "checks", len(model.Checks))
	return model, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) (*config.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	var root fileRoot
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	locals, err := evalLocals(path, &root.Locals)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate locals in %s: %w", path, err)
	}
	ev := &evaluator{filename: path, evalCtx: hcl.NewEvalContext(locals)}

	model := &config.Model{}
	if root.Dataset != nil {
		model.Dataset = translateDataset(root.Dataset, path)
	}
	for i, cs := range root.Checks {
		if cs.Rule == "" {
			return nil, fmt.Errorf("%s:%d: check #%d has no rule", path, cs.line, i+1)
		}
		if cs.Name == "" {
			return nil, fmt.Errorf("%s:%d: check #%d has no name", path, cs.line, i+1)
		}
		model.Checks = append(model.Checks, expand(ctx, ev, cs, path)...)
	}
	return model, nil
}

// evalLocals evaluates the locals mapping in declaration order.
func evalLocals(path string, node *yaml.Node) (map[string]cty.Value, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("locals must be a mapping")
	}

	locals := make(map[string]cty.Value, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if _, dup := locals[name]; dup {
			return nil, fmt.Errorf("duplicate local %q", name)
		}
		ev := &evaluator{filename: path, evalCtx: hcl.NewEvalContext(locals)}
		v, err := ev.value(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("local %q: %w", name, err)
		}
		locals[name] = v
	}
	return locals, nil
}

// expand evaluates a check section into one config.Check per for_each
// instance. Evaluation errors are recorded on the affected check.
func expand(ctx context.Context, ev *evaluator, cs *checkSection, path string) []*config.Check {
	location := fmt.Sprintf("%s:%d", path, cs.line)
	base := func(name string) *config.Check {
		c := &config.Check{Rule: cs.Rule, Name: name, Enabled: true, Location: location}
		if cs.Enabled != nil {
			c.Enabled = *cs.Enabled
		}
		if cs.Debug != nil {
			c.Debug = *cs.Debug
		}
		return c
	}

	if cs.ForEach.Kind == 0 {
		return []*config.Check{instance(ev, cs, base(cs.Name))}
	}

	forEach, err := ev.value(&cs.ForEach)
	var keys []string
	var values []cty.Value
	if err == nil {
		keys, values, err = hcl.ForEachInstances(forEach)
	}
	if err != nil {
		ctxlog.FromContext(ctx).Debug("for_each could not be evaluated.", "check", cs.Name, "error", err)
		c := base(cs.Name)
		c.Err = err
		return []*config.Check{c}
	}

	checks := make([]*config.Check, 0, len(keys))
	for i, key := range keys {
		child := &evaluator{filename: ev.filename, evalCtx: hcl.WithEach(ev.evalCtx, cty.StringVal(key), values[i])}
		checks = append(checks, instance(child, cs, base(fmt.Sprintf("%s[%s]", cs.Name, key))))
	}
	return checks
}

func instance(ev *evaluator, cs *checkSection, c *config.Check) *config.Check {
	if cs.Description.Kind != 0 {
		v, err := ev.value(&cs.Description)
		if err != nil {
			c.Err = fmt.Errorf("description: %w", err)
			return c
		}
		if v.Type() == cty.String && !v.IsNull() {
			c.Description = v.AsString()
		}
	}

	c.Arguments = map[string]cty.Value{}
	switch cs.Arguments.Kind {
	case 0:
	case yaml.MappingNode:
		args, err := ev.mapping(&cs.Arguments)
		if err != nil {
			c.Err = err
			return c
		}
		c.Arguments = args
	default:
		c.Err = fmt.Errorf("arguments must be a mapping")
	}
	return c
}

func translateDataset(s *datasetSection, scriptPath string) *config.Dataset {
	path := s.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(scriptPath), path)
	}
	return &config.Dataset{
		Path:       path,
		IDColumn:   s.IDColumn,
		Delimiter:  s.Delimiter,
		NullValues: s.NullValues,
		SourceFile: scriptPath,
	}
}
