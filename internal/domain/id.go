package domain

import "github.com/google/uuid"

// NewID returns a new random identifier for stored records.
func NewID() string {
	return uuid.New().String()
}
