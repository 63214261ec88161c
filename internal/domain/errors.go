package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidMode  = errors.New("invalid timer mode")
	ErrInvalidState = errors.New("invalid timer state")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidEntry = errors.New("invalid history entry")
)
