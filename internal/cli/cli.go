package cli

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/vk/stm32forge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageText = `
stm32forge - STM32CubeMX + PlatformIO project reconciliation tool.

Usage:
  stm32forge [options] COMMAND [command options]

Commands:
  new       save config, generate code, init PlatformIO project and patch it
            (add --with-build to also build)
  generate  run STM32CubeMX code generation
  init      create the project config file with the current parameters
  patch     append the configured patch to platformio.ini and drop scaffolding
  build     run the PlatformIO build
  clean     remove everything except the .ioc description file
  watch     regenerate code whenever the .ioc file changes

Options:
`

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("stm32forge", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageText)
		flagSet.PrintDefaults()
	}

	verboseFlag := flagSet.Bool("v", false, "Verbose output: debug logs plus external tool output passthrough.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if *logFormatFlag != "text" && *logFormatFlag != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	command := flagSet.Arg(0)

	cmdFlags := flag.NewFlagSet(command, flag.ContinueOnError)
	cmdFlags.SetOutput(output)

	dirFlag := cmdFlags.String("d", "", "Path to the project directory.")
	directoryFlag := cmdFlags.String("directory", "", "Path to the project directory.")
	boardFlag := cmdFlags.String("b", "", "Target board identifier.")
	boardLongFlag := cmdFlags.String("board", "", "Target board identifier.")
	editorFlag := cmdFlags.String("editor", "", "Editor command to launch on the project after the command succeeds.")
	withBuildFlag := cmdFlags.Bool("with-build", false, "Also run the PlatformIO build (new command only).")
	debounceFlag := cmdFlags.Duration("debounce", 500*time.Millisecond, "Settle window for description file changes (watch command only).")

	if err := cmdFlags.Parse(flagSet.Args()[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	directory := *directoryFlag
	if directory == "" {
		directory = *dirFlag
	}
	board := *boardLongFlag
	if board == "" {
		board = *boardFlag
	}

	config, err := app.NewConfig(app.Config{
		Command:   command,
		Directory: directory,
		Board:     board,
		WithBuild: *withBuildFlag,
		Editor:    *editorFlag,
		Verbose:   *verboseFlag,
		LogFormat: *logFormatFlag,
		Debounce:  *debounceFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
