package domain

import "time"

// Customer represents a loan customer.
type Customer struct {
	ID             string
	DocumentNumber string
	FirstNames     string
	LastNames      string
	CreatedAt      time.Time
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	if c.LastNames == "" {
		return c.FirstNames
	}

	return c.FirstNames + " " + c.LastNames
}
