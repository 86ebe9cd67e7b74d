package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/echo/pkg/core"
)

// options holds the internal configuration for the Echo store.
type options struct {
	slot   core.Slot
	logger *slog.Logger
	config map[string]interface{}
}

// Option defines a functional option for configuring Echo.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		slot:   nil,
		logger: nil,
		config: make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the store and its slot.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSlot allows injecting a custom persistence adapter (e.g. mock, SQL).
// If provided, the default filesystem slot will be skipped.
func WithSlot(slot core.Slot) Option {
	return func(o *options) {
		o.slot = slot
	}
}

// WithSlotFile allows specifying the slot file name inside the vault.
// Defaults to "notes.json".
func WithSlotFile(name string) Option {
	return func(o *options) {
		o.config["slot_file"] = name
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithDefaultFolder overrides the folder applied to notes created
// without one. Defaults to "Personal".
func WithDefaultFolder(folder string) Option {
	return func(o *options) {
		o.config["default_folder"] = folder
	}
}

// WithEventBuffer allows specifying the size of each subscriber's event
// buffer. Zero means default (16).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithClock overrides the time source used for timestamps. Intended for
// tests that need distinguishable instants.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.config["clock"] = clock
	}
}
