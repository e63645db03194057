// Package watcher re-runs code generation whenever the project description
// file changes. Changes are debounced so editor save bursts trigger a
// single regeneration.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/stm32forge/internal/ctxlog"
	"github.com/vk/stm32forge/internal/project"
)

// DefaultDebounce is the settle window applied to description-file changes.
const DefaultDebounce = 500 * time.Millisecond

// Watch blocks, regenerating code each time the project's description file
// settles after a change, until ctx is cancelled. A failed regeneration is
// logged and watching continues; only watcher-level failures end the loop.
func Watch(ctx context.Context, proj *project.Project, debounce time.Duration) error {
	logger := ctxlog.FromContext(ctx)

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a file-level watch.
	if err := fw.Add(proj.Dir()); err != nil {
		return fmt.Errorf("watch %s: %w", proj.Dir(), err)
	}

	regenerate := make(chan struct{}, 1)
	deb := newDebouncer(debounce, func() {
		select {
		case regenerate <- struct{}{}:
		default:
		}
	})
	defer deb.Stop()

	iocName := filepath.Base(proj.DescriptionFile())
	logger.Info("Watching project description file.", "file", iocName, "debounce", debounce)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != iocName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Description file changed.", "event", event.Op.String())
			deb.Trigger()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", proj.Dir(), err)

		case <-regenerate:
			if err := proj.GenerateCode(ctx); err != nil {
				logger.Error("Regeneration failed, still watching.", "error", err)
			}
		}
	}
}
