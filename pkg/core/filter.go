package core

import "strings"

// FilterNotes returns the notes matching the query, scoped to a folder
// when folder is non-empty. Matching is case-insensitive literal
// substring search over title, content, and tags; the query is never
// interpreted as a pattern, so regex metacharacters are plain text.
// Results preserve the collection's newest-first order. Pure, no side
// effect.
func (s *Store) FilterNotes(query, folder string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var out []Note
	for _, n := range s.notes {
		if folder != "" && n.Folder != folder {
			continue
		}
		if q != "" && !matchesQuery(n, q) {
			continue
		}
		out = append(out, n.Clone())
	}
	return out
}

// matchesQuery reports whether the lowercased query is a substring of
// the note's title, content, or any tag.
func matchesQuery(n Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
