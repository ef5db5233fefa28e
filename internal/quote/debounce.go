package quote

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers so a burst of amount keystrokes results
// in a single quote fetch. Each Trigger supersedes the pending one.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive interval makes Trigger
// call fn immediately.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules fn after the debounce interval, cancelling any pending
// call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.interval <= 0 {
		d.mu.Unlock()
		fn()
		return
	}
	d.timer = time.AfterFunc(d.interval, fn)
	d.mu.Unlock()
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
