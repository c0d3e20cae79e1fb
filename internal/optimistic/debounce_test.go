package optimistic

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })

	for i := 0; i < 5; i++ {
		d.Notify()
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// Give a reset timer a chance to fire a second time if the coalescing
	// were broken.
	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("burst fired %d times, want 1", got)
	}
}

func TestDebouncer_FlushFiresOnceAndCancelsTimer(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { fired.Add(1) })

	d.Notify()
	d.Flush()
	if got := fired.Load(); got != 1 {
		t.Fatalf("flush fired %d times, want 1", got)
	}

	// The stopped timer must not fire again.
	time.Sleep(120 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("timer fired after flush; total %d", got)
	}

	// Flush with nothing pending is a no-op.
	d.Flush()
	if got := fired.Load(); got != 1 {
		t.Fatalf("idle flush fired; total %d", got)
	}
}
