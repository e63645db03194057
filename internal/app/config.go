package app

import (
	"errors"
	"time"
)

// Subcommand names accepted by Run.
const (
	CmdNew      = "new"
	CmdGenerate = "generate"
	CmdInit     = "init"
	CmdPatch    = "patch"
	CmdBuild    = "build"
	CmdClean    = "clean"
	CmdWatch    = "watch"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command   string
	Directory string
	Board     string
	WithBuild bool
	Editor    string

	Verbose   bool
	LogFormat string
	Debounce  time.Duration
}

func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CmdNew, CmdGenerate, CmdInit, CmdPatch, CmdBuild, CmdClean, CmdWatch:
	case "":
		return nil, errors.New("Command is a required configuration field and cannot be empty")
	default:
		return nil, errors.New("unknown command: " + cfg.Command)
	}

	if cfg.Directory == "" {
		cfg.Directory = "."
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	return &cfg, nil
}
