package watcher

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CollapsesBursts(t *testing.T) {
	var flushes atomic.Int32
	d := newDebouncer(50*time.Millisecond, func() { flushes.Add(1) })
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return flushes.Load() == 1 },
		time.Second, 10*time.Millisecond)
	// No further flushes arrive after the burst settled.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), flushes.Load())
}

func TestDebouncer_StopCancelsPendingFlush(t *testing.T) {
	var flushes atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { flushes.Add(1) })

	d.Trigger()
	d.Stop()
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, flushes.Load())

	// Triggers after Stop are ignored.
	d.Trigger()
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, flushes.Load())
}
