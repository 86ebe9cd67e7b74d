package core

import "context"

// Slot defines the contract for the durable storage slot that holds the
// whole note collection. Adhering to this interface keeps the Store
// independent of the underlying storage mechanism (filesystem, SQL,
// browser storage, ...). Writes are whole-collection replacements, not
// incremental diffs; at this data scale (hundreds of notes) simplicity
// wins over write amplification.
type Slot interface {
	// Load reads the slot and returns the deserialized collection.
	// A nil slice with nil error means "nothing stored": the slot is
	// absent, or its content was malformed and has been discarded.
	// Malformed data never surfaces as an error to the caller.
	Load(ctx context.Context) ([]Note, error)

	// Save serializes and writes the full collection. A failed write is
	// reported to the caller as a non-fatal event; there is no retry.
	Save(ctx context.Context, notes []Note) error

	// Initialize ensures the underlying storage is ready
	// (e.g. create directories).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by slots that can detect out-of-band changes
// to their storage (another process rewriting the snapshot).
type Watchable interface {
	// Watch emits a signal whenever the slot content changes under the
	// store. The channel closes when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
