package model

import "math"

// Event is a bookable occasion as served by /api/events.  Events are owned
// by a manager and read-only for regular users.  DateTime is kept as the
// backend's ISO-8601 string; the client never needs to do arithmetic on it,
// only display it.
type Event struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Venue       string  `json:"venue"`
	DateTime    string  `json:"dateTime"`
	Price       float64 `json:"price"`
	TotalSeats  int     `json:"totalSeats"`
	Category    string  `json:"category"`
}

// PriceCents returns the ticket price in integer minor units.  All price
// totals are computed on cents so that multiplying by a seat count cannot
// accumulate floating-point drift.
func (e Event) PriceCents() int64 {
	return int64(math.Round(e.Price * 100))
}
