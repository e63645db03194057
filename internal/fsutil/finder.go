// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DescriptionFileExt is the extension of the project description file the
// hardware code generator consumes.
const DescriptionFileExt = ".ioc"

// FindDescriptionFile locates the single project description file directly
// inside dir and returns its absolute path. Zero or multiple candidates are
// errors; the message names the offending directory so callers can surface
// it verbatim.
func FindDescriptionFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read project directory %s: %w", dir, err)
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match("*"+DescriptionFileExt, entry.Name()); ok {
			found = append(found, entry.Name())
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("no CubeMX project .ioc file found in %s", dir)
	case 1:
		return filepath.Join(dir, found[0]), nil
	default:
		return "", fmt.Errorf("multiple CubeMX project .ioc files found in %s: %v", dir, found)
	}
}

// CleanDir removes every entry of dir except those whose base name matches
// one of the keep patterns (doublestar globs or literal names). Directories
// are removed recursively.
func CleanDir(dir string, keep []string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read project directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if matchAny(keep, entry.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
