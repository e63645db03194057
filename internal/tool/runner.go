// Package tool invokes the two external generators and the build tool. All
// blocking calls run the child to completion, capture its output and hand
// the exit status back to the orchestrator unmodified; retry policy, if
// any, belongs to the caller.
package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/vk/stm32forge/internal/config"
	"github.com/vk/stm32forge/internal/ctxlog"
)

// Result carries one finished external-tool invocation: exit code plus the
// captured output streams. It is consumed immediately, never persisted.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError reports a non-zero exit of a named external tool.
type ExitError struct {
	Tool string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}

// Exec runs the real external processes. Passthrough mirrors child output
// to the parent's streams while still capturing it; it is enabled in
// verbose mode only.
type Exec struct {
	JavaCmd       string
	CubeMXCmd     string
	PlatformIOCmd string
	Passthrough   bool
}

// NewExec builds a runner from the tool-location section of the
// configuration.
func NewExec(cfg *config.Config, passthrough bool) *Exec {
	return &Exec{
		JavaCmd:       cfg.Get(config.SectionApp, config.OptionJavaCmd),
		CubeMXCmd:     cfg.Get(config.SectionApp, config.OptionCubeMXCmd),
		PlatformIOCmd: cfg.Get(config.SectionApp, config.OptionPlatformIOCmd),
		Passthrough:   passthrough,
	}
}

// GenerateCode feeds the rendered batch script to STM32CubeMX and blocks
// until it exits. The generator itself decides which existing file regions
// to preserve; callers only observe the exit status.
func (e *Exec) GenerateCode(ctx context.Context, projectDir, script string) (Result, error) {
	scriptFile, err := os.CreateTemp("", "stm32forge-cubemx-*.txt")
	if err != nil {
		return Result{}, fmt.Errorf("create generator script: %w", err)
	}
	defer os.Remove(scriptFile.Name())

	if _, err := scriptFile.WriteString(script); err != nil {
		scriptFile.Close()
		return Result{}, fmt.Errorf("write generator script: %w", err)
	}
	if err := scriptFile.Close(); err != nil {
		return Result{}, fmt.Errorf("write generator script: %w", err)
	}

	var cmd *exec.Cmd
	if e.JavaCmd != "" {
		cmd = exec.CommandContext(ctx, e.JavaCmd, "-jar", e.CubeMXCmd, "-q", scriptFile.Name())
	} else {
		cmd = exec.CommandContext(ctx, e.CubeMXCmd, "-q", scriptFile.Name())
	}
	return e.run(ctx, "STM32CubeMX", cmd)
}

// InitBuild runs the PlatformIO project initializer for the given board.
// Success requires both a zero exit and the appearance of platformio.ini
// in the project directory.
func (e *Exec) InitBuild(ctx context.Context, projectDir, board string) (Result, error) {
	cmd := exec.CommandContext(ctx, e.PlatformIOCmd,
		"init", "-d", projectDir, "-b", board, "--ide", "none")
	res, err := e.run(ctx, "PlatformIO", cmd)
	if err != nil {
		return res, err
	}
	if res.ExitCode == 0 {
		ini := filepath.Join(projectDir, "platformio.ini")
		if _, statErr := os.Stat(ini); statErr != nil {
			return res, fmt.Errorf("PlatformIO reported success but %s is missing", ini)
		}
	}
	return res, nil
}

// Build runs the PlatformIO build and blocks until it exits.
func (e *Exec) Build(ctx context.Context, projectDir string) (Result, error) {
	cmd := exec.CommandContext(ctx, e.PlatformIOCmd, "run", "-d", projectDir)
	return e.run(ctx, "PlatformIO", cmd)
}

// StartEditor launches an interactive editor on the project directory,
// detached from the current process. Fire and forget: the editor's result
// is never inspected.
func (e *Exec) StartEditor(ctx context.Context, projectDir, editorCmd string) error {
	logger := ctxlog.FromContext(ctx)

	path, err := FindExecutable(editorCmd)
	if err != nil {
		return fmt.Errorf("editor %q not found: %w", editorCmd, err)
	}

	cmd := exec.Command(path, projectDir)
	cmd.SysProcAttr = detachAttr()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start editor %q: %w", editorCmd, err)
	}
	logger.Debug("Editor started.", "editor", editorCmd, "pid", cmd.Process.Pid)
	return cmd.Process.Release()
}

// run executes a prepared command. The returned error covers spawn-level
// problems only; a non-zero exit is reported through Result.ExitCode so the
// orchestrator can classify it.
func (e *Exec) run(ctx context.Context, name string, cmd *exec.Cmd) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting external tool.", "tool", name, "args", cmd.Args)

	var stdout, stderr bytes.Buffer
	if e.Passthrough {
		cmd.Stdout = io.MultiWriter(&stdout, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{ExitCode: -1}, fmt.Errorf("run %s: %w", name, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	logger.Debug("External tool finished.", "tool", name, "exit_code", result.ExitCode)
	return result, nil
}
