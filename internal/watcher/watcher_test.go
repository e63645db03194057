package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stm32forge/internal/project"
	"github.com/vk/stm32forge/internal/testutil"
	"github.com/vk/stm32forge/internal/watcher"
)

func TestWatch_RegeneratesOnDescriptionFileChange(t *testing.T) {
	ctx, _ := testutil.LogContext()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dir := testutil.NewProjectDir(t, "proj")
	runner := &testutil.ScriptedRunner{}
	proj, err := project.New(ctx, dir, project.Options{Runner: runner})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- watcher.Watch(ctx, proj, 50*time.Millisecond) }()

	// Give the watcher a moment to register before the change lands.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(proj.DescriptionFile(), []byte("[Mcu]\nFamily=STM32F0\nChanged=1\n"), 0o644))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "Src", "main.c"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "change did not trigger code generation")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestWatch_IgnoresUnrelatedFiles(t *testing.T) {
	ctx, _ := testutil.LogContext()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dir := testutil.NewProjectDir(t, "proj")
	runner := &testutil.ScriptedRunner{}
	proj, err := project.New(ctx, dir, project.Options{Runner: runner})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- watcher.Watch(ctx, proj, 30*time.Millisecond) }()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)

	assert.NoFileExists(t, filepath.Join(dir, "Src", "main.c"))

	cancel()
	<-done
}
