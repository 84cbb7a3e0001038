package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every business error of the service wraps exactly one of
// them; anything else is treated as a persistence/internal failure.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrCapacity   = errors.New("capacity error")
	ErrConflict   = errors.New("conflict")
	ErrState      = errors.New("invalid state")
)

// Stable category codes exposed to clients
const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeCapacity   = "capacity_error"
	CodeConflict   = "conflict"
	CodeState      = "state_error"
	CodeInternal   = "internal_error"
)

// Category returns the stable category code of err
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrCapacity):
		return CodeCapacity
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrState):
		return CodeState
	default:
		return CodeInternal
	}
}

// CapacityError no room of the category is free for the requested interval
type CapacityError struct {
	CategoryID     int64
	CategoryName   string
	TotalRooms     int
	CommittedRooms int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity error: category %d (%s) has %d rooms, %d committed for the requested dates",
		e.CategoryID, e.CategoryName, e.TotalRooms, e.CommittedRooms)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacity
}
