// Package project implements the orchestrating entity over one managed
// project directory. A Project sequences the external code generator, the
// build initializer, the build-configuration patch and the build itself,
// and owns the layered configuration for its lifetime.
//
// A Project is not safe for concurrent use, and two Projects must never be
// active against the same directory: both the filesystem and the persisted
// configuration file are unlocked shared resources.
package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/stm32forge/internal/artifact"
	"github.com/vk/stm32forge/internal/config"
	"github.com/vk/stm32forge/internal/ctxlog"
	"github.com/vk/stm32forge/internal/fsutil"
	"github.com/vk/stm32forge/internal/patch"
	"github.com/vk/stm32forge/internal/tool"
)

// Operation names attached to every log record as the "op" attribute. The
// set is fixed so log consumers can match records without reflection.
const (
	OpGenerateCode = "generate_code"
	OpInitBuild    = "init_build"
	OpPatch        = "patch"
	OpBuild        = "build"
	OpClean        = "clean"
	OpSaveConfig   = "save_config"
	OpStartEditor  = "start_editor"
)

// ErrBoardMissing indicates an operation that needs a target board was
// called without one configured.
var ErrBoardMissing = errors.New("board is not specified")

// Runner is the external-tool boundary a Project drives. tool.Exec is the
// production implementation; tests substitute scripted fakes.
type Runner interface {
	GenerateCode(ctx context.Context, projectDir, script string) (tool.Result, error)
	InitBuild(ctx context.Context, projectDir, board string) (tool.Result, error)
	Build(ctx context.Context, projectDir string) (tool.Result, error)
	StartEditor(ctx context.Context, projectDir, editorCmd string) error
}

// Options configures Project construction.
type Options struct {
	// Params overlays the persisted and default configuration, typically
	// from command-line flags. Highest precedence.
	Params config.Params
	// SaveOnClose persists the configuration when Close is called,
	// regardless of whether earlier operations succeeded. Test and
	// automation contexts leave it off to keep directories byte-stable.
	SaveOnClose bool
	// Runner substitutes the external-tool boundary. Nil selects the
	// exec-based implementation built from the loaded configuration.
	Runner Runner
	// Passthrough mirrors external tool output to the parent's streams
	// (verbose mode). Only consulted when Runner is nil.
	Passthrough bool
}

// Project binds one validated project directory to its configuration and
// tool runner.
type Project struct {
	dir         string
	name        string
	iocFile     string
	cfg         *config.Config
	runner      Runner
	saveOnClose bool
}

// New validates the directory and loads the layered configuration. It fails
// before any external process is spawned or any file is written: the
// directory must exist and contain exactly one description file, and both
// error messages embed the offending path.
func New(ctx context.Context, dir string, opts Options) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project path %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("project path does not exist: %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path is not a directory: %s", dir)
	}

	iocFile, err := fsutil.FindDescriptionFile(abs)
	if err != nil {
		return nil, err
	}

	cfg := config.Load(ctx, abs, opts.Params)

	runner := opts.Runner
	if runner == nil {
		runner = tool.NewExec(cfg, opts.Passthrough)
	}

	return &Project{
		dir:         abs,
		name:        filepath.Base(abs),
		iocFile:     iocFile,
		cfg:         cfg,
		runner:      runner,
		saveOnClose: opts.SaveOnClose,
	}, nil
}

// Dir returns the absolute project directory.
func (p *Project) Dir() string { return p.dir }

// Name returns the project name, the directory's base name.
func (p *Project) Name() string { return p.name }

// DescriptionFile returns the absolute path of the project description file.
func (p *Project) DescriptionFile() string { return p.iocFile }

// Config exposes the effective configuration for inspection and mutation.
func (p *Project) Config() *config.Config { return p.cfg }

// Board returns the configured target board identifier, possibly empty.
func (p *Project) Board() string {
	return p.cfg.Get(config.SectionProject, config.OptionBoard)
}

// GenerateCode runs the hardware code generator against the description
// file. Safe to call again at any later lifecycle point: the generator
// preserves its delimited user regions, and nothing achieved by later steps
// is touched.
func (p *Project) GenerateCode(ctx context.Context) error {
	logger := p.opLogger(ctx, OpGenerateCode)
	logger.Info("Starting code generation.", "ioc", filepath.Base(p.iocFile))

	script, err := tool.RenderScript(
		p.cfg.Get(config.SectionProject, config.OptionScriptContent),
		tool.ScriptData{ProjectDir: p.dir, IocFile: p.iocFile},
	)
	if err != nil {
		return err
	}

	res, err := p.runner.GenerateCode(ctx, p.dir, script)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		logger.Error("STM32CubeMX code generation error.", "exit_code", res.ExitCode)
		return &tool.ExitError{Tool: "STM32CubeMX", Code: res.ExitCode}
	}

	logger.Info("Code generation finished.")
	return nil
}

// InitBuild runs the build-system initializer for the configured board.
// Succeeds iff the initializer exits zero and the canonical build
// configuration file exists afterwards.
func (p *Project) InitBuild(ctx context.Context) error {
	logger := p.opLogger(ctx, OpInitBuild)

	board := p.Board()
	if board == "" {
		return ErrBoardMissing
	}
	logger.Info("Initializing PlatformIO project.", "board", board)

	res, err := p.runner.InitBuild(ctx, p.dir, board)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		logger.Error("PlatformIO init error.", "exit_code", res.ExitCode)
		return &tool.ExitError{Tool: "PlatformIO", Code: res.ExitCode}
	}

	logger.Info("PlatformIO project initialized.")
	return nil
}

// Patch appends the configured patch text to the build configuration file
// and removes the scaffold directory. Requires InitBuild to have run.
func (p *Project) Patch(ctx context.Context) error {
	logger := p.opLogger(ctx, OpPatch)

	if err := patch.Apply(ctx, p.dir, patch.SpecFromConfig(p.cfg)); err != nil {
		return err
	}

	logger.Info("Build configuration patched.", "target", patch.TargetFile)
	return nil
}

// Build runs the external build. A non-zero exit is reported with the fixed
// "PlatformIO build error" marker and returned as the operation's failure.
// After a successful build the firmware image, if present, is summarized.
func (p *Project) Build(ctx context.Context) error {
	logger := p.opLogger(ctx, OpBuild)
	logger.Info("Starting PlatformIO build.")

	res, err := p.runner.Build(ctx, p.dir)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		logger.Error("PlatformIO build error.", "exit_code", res.ExitCode)
		return &tool.ExitError{Tool: "PlatformIO", Code: res.ExitCode}
	}

	logger.Info("Build finished.")
	p.reportFirmware(logger)
	return nil
}

// Clean resets the directory to a fresh-checkout state: every entry is
// removed except the description file and any extra entries matched by the
// clean_keep patterns.
func (p *Project) Clean(ctx context.Context) error {
	logger := p.opLogger(ctx, OpClean)

	keep := []string{filepath.Base(p.iocFile)}
	for _, pattern := range strings.Split(p.cfg.Get(config.SectionProject, config.OptionCleanKeep), ",") {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			keep = append(keep, pattern)
		}
	}

	if err := fsutil.CleanDir(p.dir, keep); err != nil {
		return err
	}

	logger.Info("Project cleaned.", "kept", keep)
	return nil
}

// SaveConfig persists the full effective configuration to the project
// directory. Safe to call any number of times.
func (p *Project) SaveConfig(ctx context.Context) error {
	logger := p.opLogger(ctx, OpSaveConfig)

	if err := config.Save(p.dir, p.cfg); err != nil {
		return err
	}

	logger.Debug("Project config saved.", "file", config.FileName)
	return nil
}

// StartEditor launches the given editor on the project directory, detached.
// Best-effort side effect; the editor's outcome is never inspected.
func (p *Project) StartEditor(ctx context.Context, editorCmd string) error {
	logger := p.opLogger(ctx, OpStartEditor)
	logger.Info("Starting editor.", "editor", editorCmd)
	return p.runner.StartEditor(ctx, p.dir, editorCmd)
}

// Close finalizes the Project. When the save-on-close option was set at
// construction, the configuration is persisted even if preceding
// operations failed. Explicit rather than tied to garbage collection.
func (p *Project) Close(ctx context.Context) error {
	if p.saveOnClose {
		return p.SaveConfig(ctx)
	}
	return nil
}

func (p *Project) opLogger(ctx context.Context, op string) *slog.Logger {
	return ctxlog.FromContext(ctx).With("op", op, "project", p.name)
}

// reportFirmware logs a summary of the built firmware image. Absence of the
// image is normal (not every board target emits Intel HEX).
func (p *Project) reportFirmware(logger *slog.Logger) {
	path := artifact.HexPath(p.dir, p.Board())
	if _, err := os.Stat(path); err != nil {
		return
	}
	summary, err := artifact.ReadHex(path)
	if err != nil {
		logger.Warn("Firmware image is not readable.", "path", path, "error", err)
		return
	}
	logger.Info("Firmware image ready.", "image", filepath.Base(path), "summary", summary.String())
}
