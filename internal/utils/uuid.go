package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 identifier, falling back to a random
// UUIDv4 if the v7 generator fails.
func NewID() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
