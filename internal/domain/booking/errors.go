package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrVersionConflict = errors.New("booking was modified by another request")
)
