package quote

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
	}

	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 10*time.Millisecond)
	// No further firings after settling.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerZeroIntervalFiresImmediately(t *testing.T) {
	d := NewDebouncer(0)
	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
