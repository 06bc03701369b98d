package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// search fires.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid triggers into one callback after a quiet
// period. Strictly the last trigger wins: scheduling a new one supersedes
// any earlier pending or in-flight callback, so results never arrive out
// of order.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	gen   uint64
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A non-positive delay falls back to
// DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any pending
// callback. fn runs on a timer goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.gen == gen
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Stop cancels any pending callback and invalidates in-flight ones.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
