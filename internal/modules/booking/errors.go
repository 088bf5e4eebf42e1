package booking

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthenticated    = errors.New("sign in required")
	ErrNoSlotSelected     = errors.New("no slot selected")
	ErrUnknownSessionKind = errors.New("unknown session kind")
	ErrSlotUnavailable    = errors.New("slot is not available")
	ErrOverbooking        = errors.New("slot already booked")
	ErrNotFound           = errors.New("booking not found")
)
