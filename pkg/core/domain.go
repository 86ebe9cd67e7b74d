package core

// Update carries the fields of a partial note update. A nil pointer
// (or nil Tags slice) means "field not supplied, leave unchanged".
// This keeps the no-op branch explicit instead of relying on zero
// values accidentally overwriting data.
type Update struct {
	Title   *string
	Content *string
	Tags    []string
	Folder  *string
}

// String returns a pointer to s, for building Update literals.
func String(s string) *string { return &s }

// IsZero reports whether the update carries no fields at all.
func (u Update) IsZero() bool {
	return u.Title == nil && u.Content == nil && u.Tags == nil && u.Folder == nil
}

// EventType represents the type of change in the note collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	// EventReload is emitted when the collection is re-read from the
	// durable slot after an out-of-band change.
	EventReload EventType = "RELOAD"
)

// Event represents a change in the note collection.
type Event struct {
	Type      EventType
	ID        string
	Folder    string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and the lifecycle Event contract).
func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
