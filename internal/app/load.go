package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/dvcheck/internal/config"
	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/specialistvlad/dvcheck/internal/dataset"
	"github.com/specialistvlad/dvcheck/internal/fsutil"
	"github.com/specialistvlad/dvcheck/internal/hcl"
	"github.com/specialistvlad/dvcheck/internal/yamlcfg"
)

// scriptExtensions maps script file extensions to their loaders.
var scriptExtensions = map[string]func() config.Loader{
	".hcl":  func() config.Loader { return hcl.NewLoader() },
	".yaml": func() config.Loader { return yamlcfg.NewLoader() },
	".yml":  func() config.Loader { return yamlcfg.NewLoader() },
}

// loadScripts discovers the script files under ScriptPath and loads them
// into one model. HCL files load before YAML files; each group keeps its
// lexical file order.
func (a *App) loadScripts(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(a.config.ScriptPath, ".hcl", ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("failed to find scripts in %s: %w", a.config.ScriptPath, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl, .yaml or .yml scripts found at %s", a.config.ScriptPath)
	}
	logger.Debug("Found script files.", "files", files)

	var hclFiles, yamlFiles []string
	for _, f := range files {
		if strings.ToLower(filepath.Ext(f)) == ".hcl" {
			hclFiles = append(hclFiles, f)
		} else {
			yamlFiles = append(yamlFiles, f)
		}
	}

	model := &config.Model{}
	for _, group := range []struct {
		ext   string
		files []string
	}{{".hcl", hclFiles}, {".yaml", yamlFiles}} {
		if len(group.files) == 0 {
			continue
		}
		m, err := scriptExtensions[group.ext]().Load(ctx, group.files...)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(m); err != nil {
			return nil, err
		}
	}

	if err := model.ValidateNames(); err != nil {
		return nil, err
	}
	logger.Info("Scripts loaded.", "files", len(files), "checks", len(model.Checks))
	return model, nil
}

// loadDataset reads the dataset. Config fields take precedence over the
// script's dataset section.
func (a *App) loadDataset(ctx context.Context, section *config.Dataset) (*dataset.Dataset, error) {
	logger := ctxlog.FromContext(ctx)

	if section == nil {
		section = &config.Dataset{}
	}
	path := firstNonEmpty(a.config.DataPath, section.Path)
	if path == "" {
		return nil, fmt.Errorf("no dataset: set --data or add a dataset block to the script")
	}

	opts := dataset.Options{
		IDColumn:   firstNonEmpty(a.config.IDColumn, section.IDColumn, dataset.DefaultIDColumn),
		NullValues: section.NullValues,
	}
	if delim := firstNonEmpty(a.config.Delimiter, section.Delimiter); delim != "" {
		r, size := utf8.DecodeRuneInString(delim)
		if size != len(delim) {
			return nil, fmt.Errorf("invalid delimiter %q: must be a single character", delim)
		}
		opts.Delimiter = r
	}

	ds, err := dataset.LoadFile(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("Dataset loaded.", "path", path, "rows", ds.Len(), "columns", len(ds.Columns()), "id_column", ds.IDColumn())
	return ds, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
