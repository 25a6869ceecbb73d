package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrDateConflict = errors.New("a booking already exists for this date")

	ErrRangeConflict = errors.New("there is already an existing booking within the selected date range")

	ErrInvalidStatus = errors.New("invalid status")

	ErrIllegalTransition = errors.New("booking status cannot be changed")
)
