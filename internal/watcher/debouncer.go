package watcher

import (
	"sync"
	"time"
)

// debouncer collapses bursts of triggers into a single flush once the
// window elapses without further triggers.
type debouncer struct {
	window  time.Duration
	onFlush func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(window time.Duration, onFlush func()) *debouncer {
	return &debouncer{window: window, onFlush: onFlush}
}

// Trigger (re)arms the flush timer.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.onFlush()
		}
	})
}

// Stop cancels any pending flush. Further triggers are ignored.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
