package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Save serializes the full merged configuration to the fixed-name file
// inside dir, creating or overwriting it. All sections and options are
// written, untouched defaults included, so a later Load on a pristine
// checkout observes the exact same model.
func Save(dir string, cfg *Config) error {
	file := hclwrite.NewEmptyFile()
	root := file.Body()

	for i, section := range cfg.Sections() {
		if i > 0 {
			root.AppendNewline()
		}
		block := root.AppendNewBlock(section, nil)
		for _, option := range cfg.Options(section) {
			block.Body().SetAttributeValue(option, cty.StringVal(cfg.Get(section, option)))
		}
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, file.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save project config: %w", err)
	}
	return nil
}
