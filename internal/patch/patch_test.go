package patch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stm32forge/internal/config"
	"github.com/vk/stm32forge/internal/patch"
	"github.com/vk/stm32forge/internal/testutil"
)

func TestApply_IsContentAdditive(t *testing.T) {
	ctx, _ := testutil.LogContext()
	dir := t.TempDir()

	before := "*** TEST PLATFORMIO.INI FILE ***"
	testutil.WriteFile(t, dir, patch.TargetFile, before)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "include"), 0o755))

	spec := patch.SpecFromConfig(config.Defaults())
	require.NoError(t, patch.Apply(ctx, dir, spec))

	after := testutil.ReadFile(t, dir, patch.TargetFile)
	assert.Equal(t, before, after[:len(before)], "content before the append point was corrupted")
	assert.Equal(t, config.DefaultPatchContent, after[len(before):], "appended content is not the configured patch")
	assert.NoDirExists(t, filepath.Join(dir, "include"), "scaffold directory was not removed")
}

func TestApply_MissingScaffoldDirIsNotAnError(t *testing.T) {
	ctx, _ := testutil.LogContext()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, patch.TargetFile, "content")

	require.NoError(t, patch.Apply(ctx, dir, patch.SpecFromConfig(config.Defaults())))
}

func TestApply_MissingTargetIsFatal(t *testing.T) {
	ctx, _ := testutil.LogContext()
	dir := t.TempDir()

	err := patch.Apply(ctx, dir, patch.SpecFromConfig(config.Defaults()))
	require.Error(t, err)
	assert.ErrorIs(t, err, patch.ErrTargetMissing)
	assert.Contains(t, err.Error(), patch.TargetFile)
}

func TestApply_EmptyPatchContentIsANoOpAppend(t *testing.T) {
	ctx, _ := testutil.LogContext()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, patch.TargetFile, "untouched")

	cfg := config.Defaults()
	cfg.Set(config.SectionProject, config.OptionPatchContent, "")
	require.NoError(t, patch.Apply(ctx, dir, patch.SpecFromConfig(cfg)))

	assert.Equal(t, "untouched", testutil.ReadFile(t, dir, patch.TargetFile))
}

// Repeated patching is out of contract; this pins the observed behavior
// (a second apply appends the block again) so a change is deliberate.
func TestApply_TwiceAppendsTwice(t *testing.T) {
	ctx, _ := testutil.LogContext()
	dir := t.TempDir()
	testutil.WriteFile(t, dir, patch.TargetFile, "base")

	spec := patch.SpecFromConfig(config.Defaults())
	require.NoError(t, patch.Apply(ctx, dir, spec))
	require.NoError(t, patch.Apply(ctx, dir, spec))

	after := testutil.ReadFile(t, dir, patch.TargetFile)
	assert.Equal(t, "base"+config.DefaultPatchContent+config.DefaultPatchContent, after)
}
