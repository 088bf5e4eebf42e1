package payment

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrUnknownProduct    = errors.New("unknown product kind")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrWebhookNotEnabled = errors.New("webhook secret is not configured")
	ErrGateway           = errors.New("payment gateway error")
)
