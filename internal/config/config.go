// Package config implements the layered project configuration: compiled-in
// defaults, overlaid by the persisted per-project file, overlaid by
// caller-supplied parameters. The persisted file is HCL with one unlabeled
// block per section and string attributes only.
package config

import "sort"

// FileName is the persisted configuration file, located at the project root.
const FileName = "stm32forge.hcl"

// Section names.
const (
	SectionProject = "project"
	SectionApp     = "app"
)

// Options of the "project" section.
const (
	OptionBoard         = "board"
	OptionPatchContent  = "platformio_ini_patch_content"
	OptionScriptContent = "cubemx_script_content"
	OptionCleanKeep     = "clean_keep"
)

// Options of the "app" section (tool locations).
const (
	OptionJavaCmd       = "java_cmd"
	OptionCubeMXCmd     = "cubemx_cmd"
	OptionPlatformIOCmd = "platformio_cmd"
)

// Params is the overlay shape accepted from callers: section → option → value.
type Params map[string]map[string]string

// Config is the unified two-level section → option → value model. Values are
// always strings; numeric or boolean meaning is up to the consumer.
type Config struct {
	sections map[string]map[string]string
}

// New returns an empty configuration.
func New() *Config {
	return &Config{sections: make(map[string]map[string]string)}
}

// Get returns the value of an option, or "" when the section or option is absent.
func (c *Config) Get(section, option string) string {
	return c.sections[section][option]
}

// Set stores a value, creating the section as needed.
func (c *Config) Set(section, option, value string) {
	if c.sections[section] == nil {
		c.sections[section] = make(map[string]string)
	}
	c.sections[section][option] = value
}

// Merge overlays the given parameters onto the configuration. Existing
// options are overridden, unknown ones are added; nothing is ever removed,
// so every default key survives any sequence of merges.
func (c *Config) Merge(overlay Params) {
	for section, options := range overlay {
		for option, value := range options {
			c.Set(section, option, value)
		}
	}
}

// Sections returns the section names in lexical order.
func (c *Config) Sections() []string {
	names := make([]string, 0, len(c.sections))
	for name := range c.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns the option names of a section in lexical order.
func (c *Config) Options(section string) []string {
	names := make([]string, 0, len(c.sections[section]))
	for name := range c.sections[section] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
