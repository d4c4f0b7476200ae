package models

import "errors"

// Common errors used throughout the application
var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCheckoutNotFound    = errors.New("no active checkout session")
	ErrCheckoutExpired     = errors.New("checkout session has expired")
	ErrSlotLocked          = errors.New("slot is not yet unlocked")
	ErrSlotIndexOutOfRange = errors.New("slot index out of range")
	ErrNotEditing          = errors.New("checkout is no longer editable")
	ErrInvalidInput        = errors.New("invalid form input")
)
