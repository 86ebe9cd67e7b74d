package echo

import (
	"log/slog"
	"time"

	"github.com/aretw0/echo/internal/platform"
	"github.com/aretw0/echo/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note entity.
type Note = core.Note

// Update is a public alias for the partial-update struct.
type Update = core.Update

// Event is a public alias for store change events.
type Event = core.Event

// Event types emitted by the store.
const (
	EventCreate = core.EventCreate
	EventModify = core.EventModify
	EventDelete = core.EventDelete
	EventReload = core.EventReload
)

// String returns a pointer to s, for building Update literals.
func String(s string) *string { return core.String(s) }

// --- Configuration ---

// Option defines a functional option for configuring Echo.
type Option = platform.Option

// WithLogger sets the logger for the store and its slot.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSlot allows injecting a custom persistence adapter.
func WithSlot(slot core.Slot) Option {
	return platform.WithSlot(slot)
}

// WithSlotFile allows specifying the slot file name inside the vault.
func WithSlotFile(name string) Option {
	return platform.WithSlotFile(name)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithDefaultFolder overrides the folder applied to new notes.
func WithDefaultFolder(folder string) Option {
	return platform.WithDefaultFolder(folder)
}

// WithEventBuffer allows specifying the size of each subscriber's event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithClock overrides the time source used for timestamps.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// --- Factory ---

// New opens (or bootstraps) the note store rooted at the given vault
// path. On first activation with nothing stored, the collection is
// seeded with a single welcome note.
func New(path string, opts ...Option) (*core.Store, error) {
	return platform.New(path, opts...)
}

// --- Utils ---

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
