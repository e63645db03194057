package tool

import (
	"fmt"
	"strings"
	"text/template"
)

// ScriptData holds the values available to the generator script template.
type ScriptData struct {
	ProjectDir string
	IocFile    string
}

// RenderScript expands the configured STM32CubeMX batch script template with
// the project's absolute paths.
func RenderScript(templateText string, data ScriptData) (string, error) {
	tmpl, err := template.New("cubemx_script").Parse(templateText)
	if err != nil {
		return "", fmt.Errorf("parse generator script template: %w", err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render generator script template: %w", err)
	}
	return out.String(), nil
}
