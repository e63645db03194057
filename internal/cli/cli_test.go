package cli_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stm32forge/internal/app"
	"github.com/vk/stm32forge/internal/cli"
)

func TestParse_NoArgsPrintsUsageAndExitsCleanly(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "stm32forge")
	assert.Contains(t, out.String(), "Commands:")
}

func TestParse_FullNewCommand(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := cli.Parse(
		[]string{"-v", "new", "-d", "/tmp/proj", "-b", "nucleo_f031k6", "--with-build"}, &out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, app.CmdNew, cfg.Command)
	assert.Equal(t, "/tmp/proj", cfg.Directory)
	assert.Equal(t, "nucleo_f031k6", cfg.Board)
	assert.True(t, cfg.WithBuild)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParse_LongFlagAliases(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := cli.Parse(
		[]string{"init", "--directory", "/tmp/proj", "--board", "nucleo_f031k6"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/proj", cfg.Directory)
	assert.Equal(t, "nucleo_f031k6", cfg.Board)
}

func TestParse_DirectoryDefaultsToCwd(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := cli.Parse([]string{"generate"}, &out)

	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Directory)
}

func TestParse_WatchDebounce(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := cli.Parse([]string{"watch", "-d", "/tmp/proj", "--debounce", "2s"}, &out)

	require.NoError(t, err)
	assert.Equal(t, app.CmdWatch, cfg.Command)
	assert.Equal(t, 2*time.Second, cfg.Debounce)
}

func TestParse_EditorFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := cli.Parse([]string{"generate", "-d", "/tmp/proj", "--editor", "code"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "code", cfg.Editor)
}

func TestParse_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.Parse([]string{"frobnicate"}, &out)

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "frobnicate")
}

func TestParse_InvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.Parse([]string{"-log-format", "xml", "generate"}, &out)

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
