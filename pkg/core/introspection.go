package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	NoteCount   int    `json:"note_count"`
	FolderCount int    `json:"folder_count"`
	ActiveNote  string `json:"active_note,omitempty"`
	Subscribers int    `json:"subscribers"`
	SlotType    string `json:"slot_type"`
	Initialized bool   `json:"initialized"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slotType := "slot"
	if comp, ok := s.slot.(introspection.Component); ok {
		slotType = comp.ComponentType()
	}

	folders := make(map[string]bool, len(s.notes))
	for _, n := range s.notes {
		folders[n.Folder] = true
	}

	return StoreState{
		NoteCount:   len(s.notes),
		FolderCount: len(folders),
		ActiveNote:  s.activeID,
		Subscribers: len(s.subs),
		SlotType:    slotType,
		Initialized: s.initialized,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
