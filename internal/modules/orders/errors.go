package orders

import "errors"

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
