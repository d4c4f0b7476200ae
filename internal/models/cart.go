package models

// Cart holds per-ticket quantities for one browsing session. Tickets are
// kept in catalog order; the total is always derived from current ticket
// state, never stored.
type Cart struct {
	Tickets []Ticket `json:"tickets"`
}

// NewCart creates a cart over the given catalog with all quantities at zero
func NewCart(catalog []Ticket) *Cart {
	tickets := make([]Ticket, len(catalog))
	copy(tickets, catalog)
	for i := range tickets {
		tickets[i].Quantity = 0
	}
	return &Cart{Tickets: tickets}
}

// Increment raises a ticket's quantity by one. Returns false if the ticket
// is not in the cart.
func (c *Cart) Increment(ticketID int) bool {
	for i := range c.Tickets {
		if c.Tickets[i].ID == ticketID {
			c.Tickets[i].Quantity++
			return true
		}
	}
	return false
}

// Decrement lowers a ticket's quantity by one, flooring at zero. Returns
// false if the ticket is not in the cart.
func (c *Cart) Decrement(ticketID int) bool {
	for i := range c.Tickets {
		if c.Tickets[i].ID == ticketID {
			if c.Tickets[i].Quantity > 0 {
				c.Tickets[i].Quantity--
			}
			return true
		}
	}
	return false
}

// Selection returns the tickets with quantity > 0, in catalog order
func (c *Cart) Selection() []Ticket {
	var selected []Ticket
	for _, t := range c.Tickets {
		if t.Quantity > 0 {
			selected = append(selected, t)
		}
	}
	return selected
}

// Total recomputes the cart total from discounted prices and quantities
func (c *Cart) Total() int {
	total := 0
	for _, t := range c.Tickets {
		if t.Quantity > 0 {
			total += t.Subtotal()
		}
	}
	return total
}

// IsEmpty reports whether no tickets are selected
func (c *Cart) IsEmpty() bool {
	for _, t := range c.Tickets {
		if t.Quantity > 0 {
			return false
		}
	}
	return true
}
