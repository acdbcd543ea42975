package model

// Seat is one bookable unit of an event, served by /api/events/:id/seats.
// The Booked flag is server-authoritative: the client renders it but never
// assumes a seat stays available between fetch and submission.
type Seat struct {
	ID         int64  `json:"id"`
	EventID    int64  `json:"eventId"`
	SeatNumber string `json:"seatNumber"`
	Booked     bool   `json:"booked"`
}

// Row returns the row letter of the seat label, defined as its first byte
// ("A" for "A12").  Labels are at least one character long on a sane
// backend; an empty label sorts into the zero row.
func (s Seat) Row() byte {
	if s.SeatNumber == "" {
		return 0
	}
	return s.SeatNumber[0]
}
