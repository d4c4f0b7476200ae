package models

import "errors"

// Ticket represents a purchasable race category with a user-settable quantity
type Ticket struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Distance        string `json:"distance"`
	Price           int    `json:"price"`            // Original fee in rupees
	DiscountedPrice int    `json:"discounted_price"` // Fee after discount, what the cart charges
	DiscountPercent int    `json:"discount_percent"`
	Description     string `json:"description"`
	Quantity        int    `json:"quantity"`
}

// Validate validates the ticket data
func (t *Ticket) Validate() error {
	if t.Name == "" {
		return errors.New("ticket name is required")
	}
	if t.Price < 0 {
		return errors.New("ticket price cannot be negative")
	}
	if t.DiscountedPrice < 0 {
		return errors.New("discounted price cannot be negative")
	}
	if t.Quantity < 0 {
		return errors.New("ticket quantity cannot be negative")
	}
	return nil
}

// Subtotal returns the amount this ticket contributes to the cart total
func (t *Ticket) Subtotal() int {
	return t.DiscountedPrice * t.Quantity
}
