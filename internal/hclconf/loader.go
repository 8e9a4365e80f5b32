// Package hclconf loads host-supplied feature overrides from HCL files.
//
// An override file carries one block per feature:
//
//	feature "gateway" {
//	  enabled = true
//	  settings = {
//	    "gateway.url" = "wss://gw.example.com/socket.io"
//	  }
//	}
//
// The enabled flag force-enables or disables the feature, overriding its
// registration default; settings entries are written into the settings store
// before enablement resolution runs, so feature defaults never clobber them.
package hclconf

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/featbus/internal/ctxlog"
	"github.com/vk/featbus/internal/fsutil"
	"github.com/vk/featbus/internal/settings"
)

// Override is the parsed override for a single feature.
type Override struct {
	Name     string
	Enabled  *bool
	Settings map[string]any
}

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "feature", LabelNames: []string{"name"}},
	},
}

var featureSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "enabled"},
		{Name: "settings"},
	},
}

// Load parses every .hcl file at path (a single file or a directory walked
// recursively) and returns the feature overrides in file-then-block order.
func Load(ctx context.Context, path string) ([]Override, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading feature overrides.", "path", path)

	filePaths, err := fsutil.FindByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to discover override files under %s: %w", path, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl override files found in path.", "path", path)
		return nil, nil
	}

	parser := hclparse.NewParser()
	var overrides []Override

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		fileOverrides, err := decodeFile(hclFile, filePath)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, fileOverrides...)
		logger.Debug("Loaded overrides from file.", "file", filePath, "count", len(fileOverrides))
	}

	return overrides, nil
}

// decodeFile extracts the feature blocks of a single parsed file.
func decodeFile(file *hcl.File, filePath string) ([]Override, error) {
	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid override file %s: %w", filePath, diags)
	}

	var overrides []Override
	for _, block := range content.Blocks {
		ov := Override{Name: block.Labels[0]}

		body, diags := block.Body.Content(featureSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid feature block %q in %s: %w", ov.Name, filePath, diags)
		}

		if attr, ok := body.Attributes["enabled"]; ok {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("feature %q in %s: invalid 'enabled' value: %w", ov.Name, filePath, diags)
			}
			if val.Type() != cty.Bool {
				return nil, fmt.Errorf("feature %q in %s: 'enabled' must be a bool", ov.Name, filePath)
			}
			enabled := val.True()
			ov.Enabled = &enabled
		}

		if attr, ok := body.Attributes["settings"]; ok {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("feature %q in %s: invalid 'settings' value: %w", ov.Name, filePath, diags)
			}
			goVal, err := goValue(val)
			if err != nil {
				return nil, fmt.Errorf("feature %q in %s: unsupported 'settings' value: %w", ov.Name, filePath, err)
			}
			m, ok := goVal.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("feature %q in %s: 'settings' must be a map", ov.Name, filePath)
			}
			ov.Settings = m
		}

		overrides = append(overrides, ov)
	}
	return overrides, nil
}

// Apply writes the overrides into the settings store.
func Apply(ctx context.Context, overrides []Override, s settings.Settings) error {
	logger := ctxlog.FromContext(ctx)

	for _, ov := range overrides {
		if ov.Enabled != nil {
			var err error
			if *ov.Enabled {
				err = s.EnableFeature(ov.Name)
			} else {
				err = s.DisableFeature(ov.Name)
			}
			if err != nil {
				return fmt.Errorf("failed to apply enablement override for feature %q: %w", ov.Name, err)
			}
			logger.Debug("Applied enablement override.", "feature", ov.Name, "enabled", *ov.Enabled)
		}
		for key, value := range ov.Settings {
			if err := s.Set(key, value); err != nil {
				return fmt.Errorf("failed to apply setting %q for feature %q: %w", key, ov.Name, err)
			}
		}
	}
	return nil
}
