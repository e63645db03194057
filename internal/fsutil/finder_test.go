package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDescriptionFile(t *testing.T) {
	t.Run("exactly one", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "board.ioc")
		writeFile(t, dir, "README.md")

		path, err := FindDescriptionFile(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "board.ioc"), path)
	})

	t.Run("none", func(t *testing.T) {
		dir := t.TempDir()
		_, err := FindDescriptionFile(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CubeMX project .ioc file")
		assert.Contains(t, err.Error(), dir)
	})

	t.Run("multiple", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.ioc")
		writeFile(t, dir, "b.ioc")

		_, err := FindDescriptionFile(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple")
		assert.Contains(t, err.Error(), dir)
	})

	t.Run("directories are ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.ioc"), 0o755))
		writeFile(t, dir, "board.ioc")

		path, err := FindDescriptionFile(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "board.ioc"), path)
	})
}

func TestCleanDir(t *testing.T) {
	t.Run("removes everything not kept", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "board.ioc")
		writeFile(t, dir, "file.should.be.deleted")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "dir.should.be.deleted", "sub"), 0o755))

		require.NoError(t, CleanDir(dir, []string{"board.ioc"}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "board.ioc", entries[0].Name())
	})

	t.Run("glob keep patterns", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "board.ioc")
		writeFile(t, dir, "notes.md")
		writeFile(t, dir, "trash.txt")

		require.NoError(t, CleanDir(dir, []string{"board.ioc", "*.md"}))

		assert.FileExists(t, filepath.Join(dir, "board.ioc"))
		assert.FileExists(t, filepath.Join(dir, "notes.md"))
		assert.NoFileExists(t, filepath.Join(dir, "trash.txt"))
	})
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}
