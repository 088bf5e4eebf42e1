package onboarding

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrUnknownStep      = errors.New("unknown onboarding step")
	ErrStepOutOfOrder   = errors.New("step submitted out of order")
	ErrRoleNotSupported = errors.New("role has no onboarding")
)
