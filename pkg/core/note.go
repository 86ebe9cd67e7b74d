package core

import "time"

// Default field values applied by the Store at creation.
const (
	DefaultTitle  = "Untitled Note"
	DefaultFolder = "Personal"
)

// Note is the central entity of the domain: a short document with a
// title, opaque markdown-flavored content, ordered tags, and a single
// folder label. Notes are created and mutated exclusively by the Store.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Folder    string    `json:"folder"`
}

// Clone returns a deep copy of the note. Snapshots handed to callers
// must not alias the Store's internal slices.
func (n Note) Clone() Note {
	out := n
	if n.Tags != nil {
		out.Tags = make([]string, len(n.Tags))
		copy(out.Tags, n.Tags)
	}
	return out
}

// HasTag reports whether the note carries the tag (case-sensitive).
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// dedupeTags drops duplicate entries (case-sensitive exact match)
// while preserving insertion order.
func dedupeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
