package api

import (
	"context"
	"net/http"

	"github.com/goticket/goticket-web/internal/model"
)

// CreateBooking submits a seat-exact booking.  A seat grabbed by another
// client between fetch and submit comes back as an ordinary *Error from
// the backend; there is no conflict-specific handling here.
func (c *Client) CreateBooking(ctx context.Context, token string, req model.BookingRequest) (*model.Booking, error) {
	var b model.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", token, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateTicketBooking submits a count-based booking through the legacy
// payload shape.  Callers must have validated the ticket count first.
func (c *Client) CreateTicketBooking(ctx context.Context, token string, req model.TicketBookingRequest) (*model.Booking, error) {
	var b model.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", token, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookings returns all bookings visible to the caller.  Not every
// backend build exposes this; callers should treat a 404 as "feature
// absent" rather than an error worth surfacing.
func (c *Client) ListBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings", token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
