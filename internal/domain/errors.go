package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrIllegalState = errors.New("illegal state")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrDuplicate    = errors.New("already exists")
)

// ValidationError is returned by every constructor whose invariant does not hold.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IllegalStateError reports an operation that is valid in general but not
// against the current state of a room or hotel.
type IllegalStateError struct {
	Op     string
	Reason string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *IllegalStateError) Unwrap() error { return ErrIllegalState }

var (
	ErrNoRoomsAvailable = &IllegalStateError{Op: "create reservation", Reason: "no rooms available"}
	ErrRoomOccupied     = &IllegalStateError{Op: "assign guest", Reason: "room already occupied"}
)
