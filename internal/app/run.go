package app

import (
	"context"
	"fmt"

	"github.com/vk/stm32forge/internal/config"
	"github.com/vk/stm32forge/internal/ctxlog"
	"github.com/vk/stm32forge/internal/project"
	"github.com/vk/stm32forge/internal/watcher"
)

// Run executes the configured subcommand. The first failing step aborts the
// chain; its error is reported at error level and returned so the CLI layer
// can translate it into a non-zero exit code.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	err := a.dispatch(ctx)
	if err != nil {
		a.logger.Error("Command failed.", "command", a.config.Command, "error", err)
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) dispatch(ctx context.Context) error {
	proj, err := a.openProject(ctx)
	if err != nil {
		return err
	}
	defer proj.Close(ctx)

	switch a.config.Command {
	case CmdNew:
		steps := []func(context.Context) error{
			proj.SaveConfig,
			proj.GenerateCode,
			proj.InitBuild,
			proj.Patch,
		}
		if a.config.WithBuild {
			steps = append(steps, proj.Build)
		}
		for _, step := range steps {
			if err := step(ctx); err != nil {
				return err
			}
		}

	case CmdGenerate:
		if err := proj.GenerateCode(ctx); err != nil {
			return err
		}

	case CmdInit:
		if err := proj.SaveConfig(ctx); err != nil {
			return err
		}

	case CmdPatch:
		if err := proj.Patch(ctx); err != nil {
			return err
		}

	case CmdBuild:
		if err := proj.Build(ctx); err != nil {
			return err
		}

	case CmdClean:
		if err := proj.Clean(ctx); err != nil {
			return err
		}

	case CmdWatch:
		return watcher.Watch(ctx, proj, a.config.Debounce)

	default:
		return fmt.Errorf("unknown command: %s", a.config.Command)
	}

	if a.config.Editor != "" {
		return proj.StartEditor(ctx, a.config.Editor)
	}
	return nil
}

// openProject constructs the Project with the flag-supplied overrides.
// Save-on-close stays off: commands that must persist configuration do so
// explicitly, and clean must not resurrect the config file it just removed.
func (a *App) openProject(ctx context.Context) (*project.Project, error) {
	params := config.Params{}
	if a.config.Board != "" {
		params[config.SectionProject] = map[string]string{
			config.OptionBoard: a.config.Board,
		}
	}

	return project.New(ctx, a.config.Directory, project.Options{
		Params:      params,
		Runner:      a.runner,
		Passthrough: a.config.Verbose,
	})
}
