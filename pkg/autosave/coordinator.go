// Package autosave provides the debounced write-back path between an
// editor's keystroke stream and the note store. Bursts of field edits
// collapse into a single store update after a quiet period, so the
// durable slot is not rewritten on every keystroke.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/echo/pkg/core"
)

// DefaultDelay is the quiet period before a pending edit is written
// through to the store.
const DefaultDelay = 500 * time.Millisecond

// Saver is the slice of the store the coordinator writes to.
type Saver interface {
	UpdateNote(ctx context.Context, id string, u core.Update) error
}

// Option defines a functional option for configuring a Coordinator.
type Option func(*Coordinator)

// WithDelay overrides the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger for the coordinator.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Coordinator batches rapid field edits into a single store update.
// Only the latest pending field values are kept (last-write-wins within
// the debounce window; intermediate states are not merged), and the
// edited note is bound to a single scope at a time, so there is at most
// one pending timer per coordinator.
//
// Leaving the editor cancels a pending save without flushing, matching
// the behavior of the editor surface this serves. Edits made inside the
// quiet period are lost on plain Cancel/Close; callers that want
// flush-on-exit call Flush first. See Flush.
type Coordinator struct {
	store  Saver
	delay  time.Duration
	logger *slog.Logger

	mu        sync.Mutex
	timer     *time.Timer
	seq       uint64
	pendingID string
	pending   core.Update
	closed    bool
}

// New creates a Coordinator writing through to the given store.
func New(store Saver, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  store,
		delay:  DefaultDelay,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScheduleSave records the latest pending field values for the note and
// (re)starts the quiet-period timer. Calling again before the timer
// elapses replaces the pending values and resets the timer; switching
// to a different note discards the previous note's pending save.
func (c *Coordinator) ScheduleSave(id string, fields core.Update) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || id == "" {
		return
	}
	if c.pendingID != "" && c.pendingID != id {
		c.logger.Debug("pending auto-save discarded on note switch", "id", c.pendingID)
	}
	if c.timer != nil {
		c.timer.Stop()
	}

	c.seq++
	seq := c.seq
	c.pendingID = id
	c.pending = fields
	c.timer = time.AfterFunc(c.delay, func() {
		c.fire(seq)
	})
}

// fire applies the pending update once the quiet period elapsed
// uninterrupted. A stale sequence number means the timer was superseded
// between firing and acquiring the lock.
func (c *Coordinator) fire(seq uint64) {
	c.mu.Lock()
	if c.closed || seq != c.seq || c.pendingID == "" {
		c.mu.Unlock()
		return
	}
	id := c.pendingID
	fields := c.pending
	c.pendingID = ""
	c.pending = core.Update{}
	c.timer = nil
	c.mu.Unlock()

	if err := c.store.UpdateNote(context.Background(), id, fields); err != nil {
		c.logger.Warn("auto-save write failed", "id", id, "error", err)
	}
}

// Flush applies any pending save immediately instead of waiting out the
// quiet period. No-op when nothing is pending.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if c.pendingID == "" {
		c.mu.Unlock()
		return nil
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	id := c.pendingID
	fields := c.pending
	c.pendingID = ""
	c.pending = core.Update{}
	c.timer = nil
	c.mu.Unlock()

	return c.store.UpdateNote(ctx, id, fields)
}

// Cancel discards any pending save without flushing.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	c.pendingID = ""
	c.pending = core.Update{}
	c.timer = nil
}

// Pending reports the note id with a scheduled save, if any.
func (c *Coordinator) Pending() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingID, c.pendingID != ""
}

// Close tears the coordinator down, discarding any pending timer.
func (c *Coordinator) Close() {
	c.Cancel()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
