package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/echo/pkg/core"
)

// watchWorker observes the slot file for out-of-band changes (another
// process rewriting the snapshot) and signals the consumer after a
// short debounce. Writes issued through this Slot are filtered out by
// content checksum.
type watchWorker struct {
	*worker.BaseWorker
	slot      *Slot
	signals   chan struct{}
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(slot *Slot, signals chan struct{}) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("slot-watcher"),
		slot:       slot,
		signals:    signals,
	}
}

// Watch implements core.Watchable. The returned channel coalesces
// changes (capacity 1) and closes when ctx is done.
func (s *Slot) Watch(ctx context.Context) (<-chan struct{}, error) {
	signals := make(chan struct{}, 1)
	w := newWatchWorker(s, signals)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return signals, nil
}

var _ core.Watchable = (*Slot)(nil)

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory, not the file: atomic writes replace the file
	// by rename, which would invalidate a file-level watch.
	if err := watcher.Add(w.slot.config.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch vault directory: %w", err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.slot.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			var stack string
			if w.slot.logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}
			if stack != "" {
				w.slot.logger.Error("watcher panic", "error", panicErr, "stack", stack)
			} else {
				w.slot.logger.Error("watcher panic", "error", panicErr)
			}
		}
	}()
	defer w.slot.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Stop accepting new signals and wait for in-flight timers before
	// closing the channel the debounced callback writes to.
	w.debouncer.stopAndWait(5 * time.Second)
	close(w.signals)

	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	slotPath := w.slot.Path()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}

			if filepath.Clean(event.Name) != slotPath {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			w.slot.logger.Debug("slot event received", "op", event.Op.String())
			w.debouncer.add(func() {
				w.checkAndSignal(ctx)
			})

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.slot.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// checkAndSignal reads the slot, discards self-writes, and notifies the
// consumer of a genuine external change.
func (w *watchWorker) checkAndSignal(ctx context.Context) {
	defer func() {
		// Recover from send on closed channel if shutdown raced us.
		_ = recover()
	}()

	data, err := os.ReadFile(w.slot.Path())
	if err != nil && !os.IsNotExist(err) {
		w.slot.logger.Debug("slot read failed during watch", "error", err)
		return
	}
	if err == nil && w.slot.isSelfWrite(data) {
		w.slot.logger.Debug("own write detected, ignoring")
		return
	}

	if ctx.Err() != nil {
		return
	}
	select {
	case w.signals <- struct{}{}:
	default:
		// A signal is already pending; changes coalesce.
	}
}
