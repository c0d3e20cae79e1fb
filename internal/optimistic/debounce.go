package optimistic

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Notify calls into a single deferred firing.
// The gesture bridge uses it so a drop and its trailing release events, or
// several same-tick release callbacks, collapse into one durable reorder.
type Debouncer struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
}

func NewDebouncer(interval time.Duration, fn func()) *Debouncer {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Notify marks work pending and (re)schedules the firing.
func (d *Debouncer) Notify() {
	d.mu.Lock()
	d.pending = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.interval, d.onTimer)
	} else {
		d.timer.Reset(d.interval)
	}
	d.mu.Unlock()
}

func (d *Debouncer) onTimer() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()
	d.fn()
}

// Flush fires immediately when a notification is pending and cancels the
// scheduled timer. Used where the caller needs the write issued before it
// proceeds (one-shot commands, tests).
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fn()
}
