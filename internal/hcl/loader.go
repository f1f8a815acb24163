package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/bootgrid/internal/config"
	"github.com/vk/bootgrid/internal/ctxlog"
	"github.com/vk/bootgrid/internal/fsutil"
	"github.com/vk/bootgrid/internal/schema"
)

// Loader reads HCL boot manifests from the file system.
type Loader struct{}

// NewLoader creates an HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load finds and parses all .hcl files under the given paths and merges them
// into a single model. A module name defined in more than one file is
// overwritten by the later definition, with a warning.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
		}
		files = append(files, found...)
	}

	model := &config.Model{}
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found, returning empty model.", "paths", paths)
		return model, nil
	}

	byName := make(map[string]int)
	parser := hclparse.NewParser()
	for _, file := range files {
		logger.Debug("Parsing manifest file.", "file", file)
		modules, err := l.parseFile(ctx, file, parser)
		if err != nil {
			return nil, err
		}
		for _, mc := range modules {
			if idx, exists := byName[mc.Name]; exists {
				logger.Warn("Duplicate module definition found, it will be overwritten.", "name", mc.Name, "file", file)
				model.Modules[idx] = mc
				continue
			}
			byName[mc.Name] = len(model.Modules)
			model.Modules = append(model.Modules, mc)
		}
	}

	logger.Debug("Manifests loaded.", "module_count", len(model.Modules))
	return model, nil
}

// parseFile decodes a single manifest file into module configs.
func (l *Loader) parseFile(ctx context.Context, filePath string, parser *hclparse.Parser) ([]*config.ModuleConfig, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest file %s: %w", filePath, diags)
	}

	var parsed schema.ManifestConfig
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest file %s: %w", filePath, diags)
	}

	modules := make([]*config.ModuleConfig, 0, len(parsed.Modules))
	for _, m := range parsed.Modules {
		mc, err := translateModule(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("in manifest file %s: %w", filePath, err)
		}
		modules = append(modules, mc)
	}
	return modules, nil
}
