package fs

import (
	"github.com/aretw0/introspection"
)

// SlotState exposes internal state for observability.
type SlotState struct {
	Path          string `json:"path"`
	File          string `json:"file"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SlotState{
		Path:          s.config.Path,
		File:          s.config.File,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "fs-slot"
}

var _ introspection.Introspectable = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)
