package core

import "github.com/google/uuid"

// generateID produces a collision-resistant unique identifier for a new
// note. UUIDv7 combines a millisecond timestamp with randomness, so
// sub-millisecond creation bursts still yield distinct, sortable ids.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the randomness source does; fall back
		// to the pure-random v4 generator, which panics instead.
		return uuid.NewString()
	}
	return id.String()
}
