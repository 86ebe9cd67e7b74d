package core

import "errors"

// Common errors.
var (
	// ErrSlotUnavailable wraps persistence write failures. The in-memory
	// collection stays authoritative for the session; callers surface a
	// transient notice and move on.
	ErrSlotUnavailable = errors.New("durable slot write failed")
)
