package testutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/stm32forge/internal/tool"
)

// ScriptedRunner is a project.Runner double. Each hook may create files to
// imitate the external tool's side effects; the Result fields control the
// reported exit status. The zero value succeeds everywhere and imitates the
// generators faithfully: code generation preserves existing files (as
// STM32CubeMX does for its delimited regions) and build initialization
// creates platformio.ini plus the scaffold include directory.
type ScriptedRunner struct {
	GenerateResult tool.Result
	InitResult     tool.Result
	BuildResult    tool.Result

	// Optional overrides; when nil the default side effects run.
	OnGenerate func(projectDir, script string) error
	OnInit     func(projectDir, board string) error
	OnBuild    func(projectDir string) error

	Calls          []string
	EditorCommands []string
	Scripts        []string
}

func (r *ScriptedRunner) GenerateCode(ctx context.Context, projectDir, script string) (tool.Result, error) {
	r.Calls = append(r.Calls, "generate")
	r.Scripts = append(r.Scripts, script)
	if r.OnGenerate != nil {
		if err := r.OnGenerate(projectDir, script); err != nil {
			return tool.Result{}, err
		}
		return r.GenerateResult, nil
	}
	if r.GenerateResult.ExitCode == 0 {
		if err := writeIfAbsent(projectDir, "Src/main.c", "int main(void) {\n  while (1)\n  {\n  }\n}\n"); err != nil {
			return tool.Result{}, err
		}
		if err := writeIfAbsent(projectDir, "Inc/main.h", "#pragma once\n"); err != nil {
			return tool.Result{}, err
		}
	}
	return r.GenerateResult, nil
}

func (r *ScriptedRunner) InitBuild(ctx context.Context, projectDir, board string) (tool.Result, error) {
	r.Calls = append(r.Calls, "init")
	if r.OnInit != nil {
		if err := r.OnInit(projectDir, board); err != nil {
			return tool.Result{}, err
		}
		return r.InitResult, nil
	}
	if r.InitResult.ExitCode == 0 {
		ini := "[env:" + board + "]\nplatform = ststm32\nboard = " + board + "\n"
		if err := writeIfAbsent(projectDir, "platformio.ini", ini); err != nil {
			return tool.Result{}, err
		}
		if err := os.MkdirAll(filepath.Join(projectDir, "include"), 0o755); err != nil {
			return tool.Result{}, err
		}
	}
	return r.InitResult, nil
}

func (r *ScriptedRunner) Build(ctx context.Context, projectDir string) (tool.Result, error) {
	r.Calls = append(r.Calls, "build")
	if r.OnBuild != nil {
		if err := r.OnBuild(projectDir); err != nil {
			return tool.Result{}, err
		}
	}
	return r.BuildResult, nil
}

func (r *ScriptedRunner) StartEditor(ctx context.Context, projectDir, editorCmd string) error {
	r.Calls = append(r.Calls, "editor")
	r.EditorCommands = append(r.EditorCommands, editorCmd)
	return nil
}

// writeIfAbsent imitates generator behavior of leaving existing output (and
// therefore any user edits inside it) untouched.
func writeIfAbsent(dir, rel, content string) error {
	path := filepath.Join(dir, rel)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
