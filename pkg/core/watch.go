package core

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"
)

// WatchSlot bridges the slot's external-change signals into Reload
// calls, so the in-memory collection follows out-of-band rewrites of
// the durable slot. The supervising goroutine stops when ctx is done.
func (s *Store) WatchSlot(ctx context.Context) error {
	w, ok := s.slot.(Watchable)
	if !ok {
		return fmt.Errorf("slot does not support watching")
	}

	signals, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-signals:
				if !ok {
					return nil
				}
				if err := s.Reload(ctx); err != nil {
					s.logger.Error("reload after external change failed", "error", err)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("slot watch bridge panic", "error", err)
	}))

	return nil
}
