package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/model"
)

// fakeGateway is an in-memory backend.  Channels in blockEvent let a test
// hold a fetch in flight while the workflow is retargeted.
type fakeGateway struct {
	mu         sync.Mutex
	events     map[int64]model.Event
	seats      map[int64][]model.Seat
	blockEvent map[int64]chan struct{}
	blockBook  chan struct{}
	bookErr    error
	booked     []model.BookingRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		events:     make(map[int64]model.Event),
		seats:      make(map[int64][]model.Seat),
		blockEvent: make(map[int64]chan struct{}),
	}
}

func (f *fakeGateway) GetEvent(ctx context.Context, token string, id int64) (*model.Event, error) {
	f.mu.Lock()
	gate := f.blockEvent[id]
	ev, ok := f.events[id]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if !ok {
		return nil, &api.Error{Status: 404, Message: "event not found"}
	}
	return &ev, nil
}

func (f *fakeGateway) ListSeats(ctx context.Context, token string, eventID int64) ([]model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Seat(nil), f.seats[eventID]...), nil
}

func (f *fakeGateway) CreateBooking(ctx context.Context, token string, req model.BookingRequest) (*model.Booking, error) {
	if f.blockBook != nil {
		<-f.blockBook
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	f.booked = append(f.booked, req)
	return &model.Booking{ID: int64(len(f.booked)), Status: model.BookingStatusBooked}, nil
}

func seeded() *fakeGateway {
	gw := newFakeGateway()
	gw.events[1] = model.Event{ID: 1, Title: "Concert", Price: 499.99, TotalSeats: 3}
	gw.seats[1] = []model.Seat{
		{ID: 11, EventID: 1, SeatNumber: "A1"},
		{ID: 12, EventID: 1, SeatNumber: "A2", Booked: true},
		{ID: 13, EventID: 1, SeatNumber: "B1"},
	}
	gw.events[2] = model.Event{ID: 2, Title: "Theatre", Price: 20, TotalSeats: 1}
	gw.seats[2] = []model.Seat{{ID: 21, EventID: 2, SeatNumber: "A1"}}
	return gw
}

func ident() model.Identity {
	return model.Identity{ID: 42, Email: "u@example.com", Role: model.RoleUser}
}

func TestTargetLoadsEventAndSeats(t *testing.T) {
	w := New(seeded(), ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))

	snap := w.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	require.NotNil(t, snap.Event)
	assert.Equal(t, "Concert", snap.Event.Title)
	require.Len(t, snap.Seats, 3)
	assert.Equal(t, "A1", snap.Seats[0].SeatNumber)
	assert.Zero(t, snap.TotalCents)
}

func TestTargetFailureIsTerminal(t *testing.T) {
	w := New(seeded(), ident(), "tok")
	err := w.Target(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, StateError, w.Snapshot().State)
}

func TestToggleIdempotence(t *testing.T) {
	w := New(seeded(), ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))

	require.NoError(t, w.Toggle(11))
	require.NoError(t, w.Toggle(13))
	mid := w.Snapshot()
	assert.Equal(t, int64(99998), mid.TotalCents)

	// Toggling the same seat twice restores the original selection and
	// total exactly.
	require.NoError(t, w.Toggle(13))
	require.NoError(t, w.Toggle(13))
	after := w.Snapshot()
	assert.Equal(t, mid.TotalCents, after.TotalCents)
	assert.True(t, after.SelectedID[11])
	assert.True(t, after.SelectedID[13])
}

func TestToggleBookedSeatIsNoOp(t *testing.T) {
	w := New(seeded(), ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))

	require.NoError(t, w.Toggle(12))
	snap := w.Snapshot()
	assert.Empty(t, snap.Selected)
	assert.Zero(t, snap.TotalCents)
	assert.Equal(t, StateReady, snap.State)
}

func TestToggleUnknownSeat(t *testing.T) {
	w := New(seeded(), ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))
	assert.ErrorIs(t, w.Toggle(777), ErrUnknownSeat)
}

func TestPriceExactness(t *testing.T) {
	gw := seeded()
	gw.seats[1] = append(gw.seats[1], model.Seat{ID: 14, EventID: 1, SeatNumber: "B2"})
	w := New(gw, ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))

	require.NoError(t, w.Toggle(11))
	require.NoError(t, w.Toggle(13))
	require.NoError(t, w.Toggle(14))

	snap := w.Snapshot()
	assert.Equal(t, int64(149997), snap.TotalCents)
	assert.Equal(t, "1499.97", model.FormatCents(snap.TotalCents))
}

func TestSubmitClearsSelectionAndConfirms(t *testing.T) {
	gw := seeded()
	w := New(gw, ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))
	require.NoError(t, w.Toggle(11))
	require.NoError(t, w.Toggle(13))

	booked, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, booked)

	snap := w.Snapshot()
	assert.Equal(t, StateConfirmed, snap.State)
	assert.Empty(t, snap.Selected)

	require.Len(t, gw.booked, 1)
	req := gw.booked[0]
	assert.Equal(t, int64(42), req.User.ID)
	assert.Equal(t, int64(1), req.Event.ID)
	assert.Equal(t, []model.Ref{{ID: 11}, {ID: 13}}, req.SeatsBooked)
	assert.Equal(t, model.BookingStatusBooked, req.Status)
}

func TestSubmitFailurePreservesSelection(t *testing.T) {
	gw := seeded()
	gw.bookErr = &api.Error{Status: 409, Message: "Seat already booked"}
	w := New(gw, ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))
	require.NoError(t, w.Toggle(11))

	_, err := w.Submit(context.Background())
	require.Error(t, err)

	snap := w.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.True(t, snap.SelectedID[11], "selection must survive a failed submission")
	assert.Contains(t, snap.Err, "Seat already booked")

	// Retry without re-selecting.
	gw.bookErr = nil
	_, err = w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, w.Snapshot().State)
}

func TestSubmitRequiresSelection(t *testing.T) {
	w := New(seeded(), ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))
	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSubmitWhileInFlightRejected(t *testing.T) {
	gw := seeded()
	gw.blockBook = make(chan struct{})
	w := New(gw, ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))
	require.NoError(t, w.Toggle(11))

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()

	// Wait for the first submission to take the Submitting state.
	require.Eventually(t, func() bool {
		return w.Snapshot().State == StateSubmitting
	}, time.Second, time.Millisecond)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(gw.blockBook)
	require.NoError(t, <-done)
}

func TestRetargetClearsSelection(t *testing.T) {
	w := New(seeded(), ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))
	require.NoError(t, w.Toggle(11))

	require.NoError(t, w.Target(context.Background(), 2))
	snap := w.Snapshot()
	assert.Equal(t, int64(2), snap.Event.ID)
	assert.Empty(t, snap.Selected)
}

func TestSameTargetRefreshPrunesNewlyBookedSeats(t *testing.T) {
	gw := seeded()
	w := New(gw, ident(), "tok")
	require.NoError(t, w.Target(context.Background(), 1))
	require.NoError(t, w.Toggle(11))
	require.NoError(t, w.Toggle(13))

	// Someone else books seat 11 between fetches.
	gw.mu.Lock()
	gw.seats[1][0].Booked = true
	gw.mu.Unlock()

	require.NoError(t, w.Target(context.Background(), 1))
	snap := w.Snapshot()
	assert.False(t, snap.SelectedID[11])
	assert.True(t, snap.SelectedID[13], "still-available seats stay selected on refresh")
}

func TestStaleResponseDiscarded(t *testing.T) {
	gw := seeded()
	gate := make(chan struct{})
	gw.mu.Lock()
	gw.blockEvent[1] = gate
	gw.mu.Unlock()

	w := New(gw, ident(), "tok")

	// Target event 1; its event fetch hangs on the gate.
	staleDone := make(chan error, 1)
	go func() {
		staleDone <- w.Target(context.Background(), 1)
	}()
	require.Eventually(t, func() bool {
		return w.Snapshot().State == StateLoading
	}, time.Second, time.Millisecond)

	// Retarget to event 2 while event 1 is still in flight.
	require.NoError(t, w.Target(context.Background(), 2))
	assert.Equal(t, int64(2), w.Snapshot().Event.ID)

	// Event 1's response finally arrives; it must be discarded.
	close(gate)
	assert.ErrorIs(t, <-staleDone, ErrStale)

	snap := w.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, int64(2), snap.Event.ID)
	assert.Equal(t, "Theatre", snap.Event.Title)
}
