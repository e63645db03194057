package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultPatchContent is appended verbatim to platformio.ini by the patch
// operation unless overridden via project.platformio_ini_patch_content.
const DefaultPatchContent = "\n[platformio]\ninclude_dir = Inc\nsrc_dir = Src\n"

// DefaultScriptContent is the STM32CubeMX batch script template. It is
// rendered with the absolute project directory and description file paths
// before being handed to the generator.
const DefaultScriptContent = "config load {{.IocFile}}\ngenerate code {{.ProjectDir}}\nexit\n"

// Defaults builds the compiled-in configuration. Every option the tool ever
// reads is declared here; loading only overrides values, never drops keys.
func Defaults() *Config {
	c := New()

	c.Set(SectionProject, OptionBoard, "")
	c.Set(SectionProject, OptionPatchContent, DefaultPatchContent)
	c.Set(SectionProject, OptionScriptContent, DefaultScriptContent)
	c.Set(SectionProject, OptionCleanKeep, "")

	c.Set(SectionApp, OptionJavaCmd, "java")
	c.Set(SectionApp, OptionCubeMXCmd, defaultCubeMXCmd())
	c.Set(SectionApp, OptionPlatformIOCmd, "platformio")

	return c
}

// defaultCubeMXCmd returns the conventional STM32CubeMX install location for
// the current platform.
func defaultCubeMXCmd() string {
	switch runtime.GOOS {
	case "darwin":
		return "/Applications/STM32CubeMX.app/Contents/Resources/STM32CubeMX"
	case "windows":
		return "C:/Program Files/STM32CubeMX/STM32CubeMX.exe"
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "STM32CubeMX"
		}
		return filepath.Join(home, "STM32CubeMX", "STM32CubeMX")
	}
}
