package fs

import (
	"sync"
	"time"
)

// debouncer collapses a burst of signals into a single callback after a
// quiet period. Rescheduling cancels and replaces the pending timer.
type debouncer struct {
	delay time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	inflight sync.WaitGroup
	stopped  bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// add schedules fn after the quiet period, replacing any pending timer.
func (d *debouncer) add(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		// Superseded before it fired.
		d.inflight.Done()
	}
	d.inflight.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.inflight.Done()
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			fn()
		}
	})
}

// stopAndWait rejects new signals and waits (bounded) for any in-flight
// timer callback to finish, so shutdown can safely close channels the
// callback writes to.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.inflight.Done()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
