// Package seatmap retrieves and normalizes the seat inventory of one
// event.  The backend returns seats in arbitrary order; everything
// downstream (the seat grid, the booking workflow) relies on the
// deterministic ordering produced here.
package seatmap

import (
	"context"
	"sort"
	"strconv"

	"github.com/goticket/goticket-web/internal/model"
)

// Lister is the slice of the API client this package needs.
type Lister interface {
	ListSeats(ctx context.Context, token string, eventID int64) ([]model.Seat, error)
}

// Load fetches the seat inventory for an event and returns it in display
// order.  Read-only: no server state is touched.
func Load(ctx context.Context, l Lister, token string, eventID int64) ([]model.Seat, error) {
	seats, err := l.ListSeats(ctx, token, eventID)
	if err != nil {
		return nil, err
	}
	Sort(seats)
	return seats, nil
}

// Sort orders seats by row letter (first byte of the label) and then by
// the numeric suffix parsed as an integer, so "A2" precedes "A10" and
// both precede "B1".  Plain string comparison on the full label would put
// "A10" before "A2" and is exactly what this exists to avoid.  The sort
// is stable: equal keys keep their fetch order.
func Sort(seats []model.Seat) {
	sort.SliceStable(seats, func(i, j int) bool {
		a, b := seats[i], seats[j]
		if a.Row() != b.Row() {
			return a.Row() < b.Row()
		}
		return column(a.SeatNumber) < column(b.SeatNumber)
	})
}

// column parses the digits after the row letter.  Labels without a valid
// numeric suffix sort to the front of their row.
func column(label string) int {
	if len(label) < 2 {
		return 0
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil {
		return 0
	}
	return n
}

// Rows groups an ordered seat sequence by row for the grid template.  The
// input must already be sorted; each group preserves order.
func Rows(seats []model.Seat) [][]model.Seat {
	var rows [][]model.Seat
	for _, s := range seats {
		if len(rows) == 0 || rows[len(rows)-1][0].Row() != s.Row() {
			rows = append(rows, []model.Seat{s})
			continue
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], s)
	}
	return rows
}
