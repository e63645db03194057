package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/stm32forge/internal/ctxlog"
)

// Load builds the effective configuration for a project directory.
// Precedence, highest first: caller overrides > persisted file > defaults.
// A missing persisted file is normal; a malformed one is reported as a
// warning and skipped, never surfaced as an error.
func Load(ctx context.Context, dir string, overrides Params) *Config {
	logger := ctxlog.FromContext(ctx)

	cfg := Defaults()

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		persisted, err := parseFile(path)
		if err != nil {
			logger.Warn("Ignoring malformed project config file.", "path", path, "error", err)
		} else {
			cfg.Merge(persisted)
			logger.Debug("Persisted project config merged.", "path", path)
		}
	}

	cfg.Merge(overrides)
	return cfg
}

// parseFile reads one persisted config file into section/option pairs. Each
// top-level block is a section; every attribute must evaluate to a literal
// convertible to string.
func parseFile(path string) (Params, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse %s: unexpected body type", filepath.Base(path))
	}

	params := make(Params)
	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return nil, fmt.Errorf("section %q must not have labels", block.Type)
		}
		section := make(map[string]string)
		for name, attr := range block.Body.Attributes {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("evaluate %s.%s: %w", block.Type, name, diags)
			}
			str, err := convert.Convert(val, cty.String)
			if err != nil {
				return nil, fmt.Errorf("option %s.%s is not a string: %w", block.Type, name, err)
			}
			section[name] = str.AsString()
		}
		params[block.Type] = section
	}
	return params, nil
}
