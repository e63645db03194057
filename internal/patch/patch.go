// Package patch applies the deterministic build-configuration patch: a
// literal text append to the generated platformio.ini plus removal of the
// scaffold directories the build initializer emits.
package patch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vk/stm32forge/internal/config"
	"github.com/vk/stm32forge/internal/ctxlog"
)

// TargetFile is the build-configuration file mutated by Apply, relative to
// the project root.
const TargetFile = "platformio.ini"

// ErrTargetMissing indicates that the build configuration file does not
// exist yet, i.e. the build initializer has not been run.
var ErrTargetMissing = errors.New("build configuration file not found")

// Spec is one patch: the target file, the text to append and the scaffold
// directories to delete. All paths are relative to the project root.
type Spec struct {
	TargetFile string
	Content    string
	RemoveDirs []string
}

// SpecFromConfig builds the canonical patch from configuration. The patch
// text is an operator-overridable option; an empty value is a legal no-op
// append.
func SpecFromConfig(cfg *config.Config) Spec {
	return Spec{
		TargetFile: TargetFile,
		Content:    cfg.Get(config.SectionProject, config.OptionPatchContent),
		RemoveDirs: []string{"include"},
	}
}

// Apply appends spec.Content verbatim to the target file and removes the
// scaffold directories. Content before the append point is untouched
// byte-for-byte. Apply always appends: running it twice duplicates the
// appended block, repeated patching is out of contract. A missing target
// file is fatal (wraps ErrTargetMissing); missing scaffold directories are
// not an error.
func Apply(ctx context.Context, projectDir string, spec Spec) error {
	logger := ctxlog.FromContext(ctx)

	target := filepath.Join(projectDir, spec.TargetFile)
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s (run the build initialization first)", ErrTargetMissing, target)
		}
		return fmt.Errorf("open %s: %w", target, err)
	}

	_, err = file.WriteString(spec.Content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("append patch to %s: %w", target, err)
	}
	logger.Debug("Patch content appended.", "target", target, "bytes", len(spec.Content))

	for _, dir := range spec.RemoveDirs {
		scaffold := filepath.Join(projectDir, dir)
		if err := os.RemoveAll(scaffold); err != nil {
			return fmt.Errorf("remove scaffold directory %s: %w", scaffold, err)
		}
		logger.Debug("Scaffold directory removed.", "dir", scaffold)
	}
	return nil
}
