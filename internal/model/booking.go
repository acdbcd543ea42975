package model

// Ref is a bare {"id": n} object.  The booking endpoint identifies the
// user, the event and each seat by reference only.
type Ref struct {
	ID int64 `json:"id"`
}

// BookingRequest is the seat-exact payload accepted by POST /api/bookings.
// This is the authoritative contract; see TicketBookingRequest for the
// legacy count-based alternative.
type BookingRequest struct {
	User        Ref    `json:"user"`
	Event       Ref    `json:"event"`
	SeatsBooked []Ref  `json:"seatsBooked"`
	Status      string `json:"status"`
	BookingDate string `json:"bookingDate"`
}

// TicketBookingRequest is the older count-based payload still accepted by
// the backend for quantity bookings without seat assignment.
type TicketBookingRequest struct {
	UserID          int64   `json:"userId"`
	EventID         int64   `json:"eventId"`
	NumberOfTickets int     `json:"numberOfTickets"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	TotalPrice      float64 `json:"totalPrice"`
}

// Booking is the persisted record returned by the backend after a
// successful submission.  Immutable from the client's perspective.
type Booking struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	BookingDate string  `json:"bookingDate"`
	TotalPrice  float64 `json:"totalPrice"`
	Seats       []Seat  `json:"seatsBooked,omitempty"`
}

// BookingStatusBooked is the status stamped on every seat-exact submission.
const BookingStatusBooked = "BOOKED"
