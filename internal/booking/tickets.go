package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/goticket/goticket-web/internal/model"
)

// MaxTicketsPerBooking bounds the count-based quick-book form.  The
// seat-exact flow needs no such bound: its selection is structurally a
// subset of the fetched seats.
const MaxTicketsPerBooking = 10

// ValidationError is a field-level form failure.  It never reaches the
// network; the form re-renders with the message next to the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// ValidateTicketCount enforces the quick-book bounds before any network
// call: at least one ticket, at most MaxTicketsPerBooking, and no more
// than the event has seats.
func ValidateTicketCount(n int, ev *model.Event) error {
	if n < 1 {
		return &ValidationError{Field: "numberOfTickets", Message: "Please select at least 1 ticket"}
	}
	if n > MaxTicketsPerBooking {
		return &ValidationError{Field: "numberOfTickets", Message: fmt.Sprintf("Maximum %d tickets per booking", MaxTicketsPerBooking)}
	}
	if ev != nil && n > ev.TotalSeats {
		return &ValidationError{Field: "numberOfTickets", Message: fmt.Sprintf("Only %d tickets available", ev.TotalSeats)}
	}
	return nil
}

// TicketGateway is the API-client slice for count-based bookings.
type TicketGateway interface {
	CreateTicketBooking(ctx context.Context, token string, req model.TicketBookingRequest) (*model.Booking, error)
}

// QuickBook submits a count-based booking through the legacy payload.  The
// total is computed on integer cents and only converted to major units at
// the payload boundary, which the backend stores verbatim.
func QuickBook(ctx context.Context, gw TicketGateway, token string, ident model.Identity, ev *model.Event, tickets int, specialRequests string) (*model.Booking, error) {
	if ev == nil {
		return nil, ErrNotReady
	}
	if err := ValidateTicketCount(tickets, ev); err != nil {
		return nil, err
	}
	totalCents := ev.PriceCents() * int64(tickets)
	req := model.TicketBookingRequest{
		UserID:          ident.ID,
		EventID:         ev.ID,
		NumberOfTickets: tickets,
		SpecialRequests: specialRequests,
		BookingDate:     time.Now().UTC().Format(time.RFC3339),
		TotalPrice:      float64(totalCents) / 100,
	}
	return gw.CreateTicketBooking(ctx, token, req)
}
