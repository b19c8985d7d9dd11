package store

import "github.com/google/uuid"

// NewID generates a record identifier. UUIDv7 combines a millisecond
// timestamp with a random suffix, so ids from rapid successive calls stay
// unique and roughly time-ordered.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source is exhausted
		return uuid.NewString()
	}
	return id.String()
}
