package availability

import "errors"

var (
	ErrValidation = errors.New("invalid availability")
	ErrConflict   = errors.New("booked slots cannot be removed or released")

	ErrInvalidRange = errors.New("invalid slot range")
)
