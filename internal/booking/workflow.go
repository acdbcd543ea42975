// Package booking implements the seat-selection workflow: one state
// machine per login coordinating the joined event/seat fetch, the
// selection set, price totals and submission.  Handlers drive it from
// form posts; all methods are safe for concurrent use because nothing
// stops a user from opening the booking page in two tabs.
package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goticket/goticket-web/internal/model"
	"github.com/goticket/goticket-web/internal/seatmap"
)

// State is the workflow position.  Error is reachable from Loading and
// Submitting; every other transition is driven by Target, Toggle and
// Submit.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateSelecting
	StateSubmitting
	StateConfirmed
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSelecting:
		return "selecting"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Gateway is the slice of the API client the workflow needs.
type Gateway interface {
	GetEvent(ctx context.Context, token string, id int64) (*model.Event, error)
	ListSeats(ctx context.Context, token string, eventID int64) ([]model.Seat, error)
	CreateBooking(ctx context.Context, token string, req model.BookingRequest) (*model.Booking, error)
}

var (
	// ErrNotReady means the workflow has no loaded event to act on.
	ErrNotReady = errors.New("booking data not loaded")
	// ErrNoSelection blocks submission of an empty selection.
	ErrNoSelection = errors.New("no seats selected")
	// ErrSubmitInFlight blocks a second submission while one is running.
	ErrSubmitInFlight = errors.New("booking submission already in flight")
	// ErrStale marks a fetch or submission whose result arrived after the
	// workflow was retargeted.  The result has been discarded; whatever
	// superseded it owns the displayed state.
	ErrStale = errors.New("response superseded by a newer target")
	// ErrUnknownSeat means the toggled id is not part of the loaded map.
	ErrUnknownSeat = errors.New("seat not in the current seat map")
)

// Workflow is the per-login booking state machine.
type Workflow struct {
	gw    Gateway
	ident model.Identity
	token string
	now   func() time.Time

	mu       sync.Mutex
	state    State
	gen      uint64
	eventID  int64
	event    *model.Event
	seats    []model.Seat
	selected map[int64]model.Seat
	lastErr  string
}

// New builds an idle workflow for one authenticated principal.
func New(gw Gateway, ident model.Identity, token string) *Workflow {
	return &Workflow{
		gw:       gw,
		ident:    ident,
		token:    token,
		now:      time.Now,
		state:    StateIdle,
		selected: make(map[int64]model.Seat),
	}
}

// Target points the workflow at an event and loads its detail and seat map
// concurrently.  Both fetches must succeed before the workflow is Ready;
// the first failure wins and the sibling result is discarded.  Targeting a
// new event clears the selection unconditionally.  Re-targeting the same
// event refreshes the data and keeps whatever selected seats are still
// available.  If a newer Target supersedes this one while its fetches are
// in flight, the late results are thrown away and ErrStale is returned.
func (w *Workflow) Target(ctx context.Context, eventID int64) error {
	w.mu.Lock()
	w.gen++
	gen := w.gen
	if eventID != w.eventID {
		w.selected = make(map[int64]model.Seat)
	}
	w.eventID = eventID
	w.state = StateLoading
	w.lastErr = ""
	token := w.token
	w.mu.Unlock()

	var (
		ev    *model.Event
		seats []model.Seat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ev, err = w.gw.GetEvent(gctx, token, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		seats, err = seatmap.Load(gctx, w.gw, token, eventID)
		return err
	})
	err := g.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return ErrStale
	}
	if err != nil {
		w.state = StateError
		w.event = nil
		w.seats = nil
		w.lastErr = err.Error()
		return err
	}
	w.event = ev
	w.seats = seats
	w.pruneSelection()
	if len(w.selected) > 0 {
		w.state = StateSelecting
	} else {
		w.state = StateReady
	}
	return nil
}

// pruneSelection drops selected seats that no longer exist in the loaded
// map or were booked by someone else since the last fetch.  Caller holds
// the lock.
func (w *Workflow) pruneSelection() {
	current := make(map[int64]model.Seat, len(w.seats))
	for _, s := range w.seats {
		current[s.ID] = s
	}
	for id := range w.selected {
		s, ok := current[id]
		if !ok || s.Booked {
			delete(w.selected, id)
		}
	}
}

// Toggle flips a seat in or out of the selection.  Booked seats are a
// guarded no-op, never an error.  Toggling twice restores the previous
// selection and total exactly.
func (w *Workflow) Toggle(seatID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.event == nil || w.state == StateSubmitting || w.state == StateLoading {
		return ErrNotReady
	}
	var seat *model.Seat
	for i := range w.seats {
		if w.seats[i].ID == seatID {
			seat = &w.seats[i]
			break
		}
	}
	if seat == nil {
		return ErrUnknownSeat
	}
	if seat.Booked {
		return nil
	}
	if _, ok := w.selected[seatID]; ok {
		delete(w.selected, seatID)
	} else {
		w.selected[seatID] = *seat
	}
	if len(w.selected) > 0 {
		w.state = StateSelecting
	} else {
		w.state = StateReady
	}
	return nil
}

// Submit sends the seat-exact booking payload.  It requires a non-empty
// selection and refuses to run while another submission is in flight, so
// double-clicking the confirm control cannot double-book.  On success the
// selection is cleared; on failure it is preserved so the user can retry
// without re-selecting.
func (w *Workflow) Submit(ctx context.Context) (*model.Booking, error) {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if w.event == nil {
		w.mu.Unlock()
		return nil, ErrNotReady
	}
	if len(w.selected) == 0 {
		w.mu.Unlock()
		return nil, ErrNoSelection
	}
	gen := w.gen
	w.state = StateSubmitting
	w.lastErr = ""
	req := model.BookingRequest{
		User:        model.Ref{ID: w.ident.ID},
		Event:       model.Ref{ID: w.event.ID},
		SeatsBooked: w.selectedRefs(),
		Status:      model.BookingStatusBooked,
		BookingDate: w.now().UTC().Format(time.RFC3339),
	}
	token := w.token
	w.mu.Unlock()

	booked, err := w.gw.CreateBooking(ctx, token, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return nil, ErrStale
	}
	if err != nil {
		w.state = StateError
		w.lastErr = err.Error()
		return nil, err
	}
	w.state = StateConfirmed
	w.selected = make(map[int64]model.Seat)
	return booked, nil
}

// selectedRefs returns the selection as id references in seat-map order.
// Caller holds the lock.
func (w *Workflow) selectedRefs() []model.Ref {
	refs := make([]model.Ref, 0, len(w.selected))
	for id := range w.selected {
		refs = append(refs, model.Ref{ID: id})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}

// Snapshot is an immutable view of the workflow for rendering.
type Snapshot struct {
	State      State
	Event      *model.Event
	Seats      []model.Seat
	SelectedID map[int64]bool
	Selected   []model.Seat
	TotalCents int64
	Err        string
}

// Snapshot captures the current workflow state for the template layer.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		State:      w.state,
		Event:      w.event,
		Seats:      append([]model.Seat(nil), w.seats...),
		SelectedID: make(map[int64]bool, len(w.selected)),
		Err:        w.lastErr,
	}
	for _, s := range w.seats {
		if _, ok := w.selected[s.ID]; ok {
			snap.SelectedID[s.ID] = true
			snap.Selected = append(snap.Selected, s)
		}
	}
	if w.event != nil {
		snap.TotalCents = w.event.PriceCents() * int64(len(w.selected))
	}
	return snap
}
