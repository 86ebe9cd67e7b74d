package platform

import (
	"context"
	"time"

	"github.com/aretw0/echo/pkg/adapters/fs"
	"github.com/aretw0/echo/pkg/core"
)

// New builds a ready Store rooted at the given vault path: it wires the
// persistence slot, constructs the store, and runs Initialize (loading
// the persisted collection or seeding the welcome note).
func New(path string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	slot := o.slot
	if slot == nil {
		slotFile, _ := o.config["slot_file"].(string)
		mustExist, _ := o.config["must_exist"].(bool)
		slot = fs.NewSlot(fs.Config{
			Path:      path,
			File:      slotFile,
			MustExist: mustExist,
			Logger:    o.logger,
		})
	}

	defaultFolder, _ := o.config["default_folder"].(string)
	eventBuffer, _ := o.config["event_buffer"].(int)
	clock, _ := o.config["clock"].(func() time.Time)

	store := core.NewStore(slot, core.StoreConfig{
		Logger:        o.logger,
		Clock:         clock,
		DefaultFolder: defaultFolder,
		EventBuffer:   eventBuffer,
	})

	if err := store.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return store, nil
}
