package app

import (
	"io"
	"log/slog"

	"github.com/vk/stm32forge/internal/project"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	runner project.Runner
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. A non-nil runner
// substitutes the external-tool boundary, which is primarily for testing;
// nil selects the real exec-based tools.
func NewApp(outW io.Writer, appConfig *Config, runner project.Runner) *App {
	logger := newLogger(appConfig.Verbose, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		runner: runner,
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
