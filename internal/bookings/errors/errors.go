package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrRoomNotFound = errors.New("room not found")

	// ErrLockHeld means another request holds the reservation lock for the
	// same rooms and date range.
	ErrLockHeld = errors.New("reservation lock held by another request")

	// ErrNightTaken is the uniqueness violation on an occupancy insert: a
	// concurrent writer committed the same room/night first.
	ErrNightTaken = errors.New("room already occupied for requested night")
)
