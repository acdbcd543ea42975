package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/booking"
	"github.com/goticket/goticket-web/internal/guard"
	"github.com/goticket/goticket-web/internal/model"
	"github.com/goticket/goticket-web/internal/seatmap"
	"github.com/goticket/goticket-web/internal/session"
)

// BookingHandler drives the seat-selection workflow from the booking page:
// GET targets the workflow and renders the grid, the POSTs toggle seats,
// confirm the selection or quick-book by ticket count.
type BookingHandler struct {
	Flows *booking.Registry
	API   *api.Client
}

func NewBookingHandler(flows *booking.Registry, client *api.Client) *BookingHandler {
	return &BookingHandler{Flows: flows, API: client}
}

// flow returns the calling session's workflow.
func (h *BookingHandler) flow(c echo.Context) *booking.Workflow {
	ident := mustIdentity(c)
	return h.Flows.Get(session.ID(c), ident, session.Token(c))
}

// Show targets the workflow at the event in the URL and renders the seat
// grid.  The target fetch joins event detail and seat map; if either
// fails the page shows a terminal error state instead of retrying.
func (h *BookingHandler) Show(c echo.Context) error {
	eventID, ok := pathID(c)
	if !ok {
		return renderError(c, http.StatusBadRequest, "Invalid event ID format.")
	}

	flow := h.flow(c)
	if err := flow.Target(c.Request().Context(), eventID); err != nil {
		switch {
		case errors.Is(err, booking.ErrStale):
			// A newer navigation owns the workflow now; send this
			// stray request to where the user actually went.
			return c.Redirect(http.StatusSeeOther, bookPath(eventID))
		case api.IsNotFound(err):
			return renderError(c, http.StatusNotFound, "Event not found - the event with this ID doesn't exist.")
		default:
			return renderError(c, http.StatusBadGateway, "Failed to load booking information. Please try again later.")
		}
	}
	return h.render(c, flow)
}

// render draws the booking page from the workflow snapshot without
// touching the backend.
func (h *BookingHandler) render(c echo.Context, flow *booking.Workflow) error {
	snap := flow.Snapshot()
	if snap.Event == nil {
		return renderError(c, http.StatusBadGateway, "Failed to load booking information. Please try again later.")
	}
	data := page(c, "Book "+snap.Event.Title)
	data["Event"] = snap.Event
	data["Rows"] = seatmap.Rows(snap.Seats)
	data["Selected"] = snap.Selected
	data["SelectedID"] = snap.SelectedID
	data["SelectedCount"] = len(snap.Selected)
	data["Total"] = model.FormatCents(snap.TotalCents)
	data["Price"] = model.FormatCents(snap.Event.PriceCents())
	data["Submitting"] = snap.State == booking.StateSubmitting
	if data["Err"] == "" && snap.State == booking.StateError {
		data["Err"] = snap.Err
	}
	return c.Render(http.StatusOK, "booking.html", data)
}

// Toggle flips one seat and returns to the grid.  Booked seats are a
// silent no-op, matching the workflow guard.
func (h *BookingHandler) Toggle(c echo.Context) error {
	eventID, ok := pathID(c)
	if !ok {
		return renderError(c, http.StatusBadRequest, "Invalid event ID format.")
	}
	seatID, err := strconv.ParseInt(c.FormValue("seat"), 10, 64)
	if err != nil {
		return redirectErr(c, bookPath(eventID), "Unknown seat.")
	}

	if err := h.flow(c).Toggle(seatID); err != nil {
		if errors.Is(err, booking.ErrUnknownSeat) {
			return redirectErr(c, bookPath(eventID), "Unknown seat.")
		}
		return c.Redirect(http.StatusSeeOther, bookPath(eventID))
	}
	return c.Redirect(http.StatusSeeOther, bookPath(eventID))
}

// Confirm submits the current selection.  Success navigates away to the
// role's home view; failure returns to the grid with the backend message
// and the selection intact for a retry.
func (h *BookingHandler) Confirm(c echo.Context) error {
	eventID, ok := pathID(c)
	if !ok {
		return renderError(c, http.StatusBadRequest, "Invalid event ID format.")
	}

	if _, err := h.flow(c).Submit(c.Request().Context()); err != nil {
		switch {
		case errors.Is(err, booking.ErrNoSelection):
			return redirectErr(c, bookPath(eventID), "Select at least one seat first.")
		case errors.Is(err, booking.ErrSubmitInFlight):
			return redirectErr(c, bookPath(eventID), "Your booking is already being processed.")
		case errors.Is(err, booking.ErrStale):
			return c.Redirect(http.StatusSeeOther, bookPath(eventID))
		default:
			return redirectErr(c, bookPath(eventID), api.UserMessage(err, "Booking failed. Please try again."))
		}
	}
	ident := mustIdentity(c)
	return redirectMsg(c, guard.HomePath(ident.Role), "Booking confirmed!")
}

// QuickBook handles the count-based form.  Validation failures never
// reach the network; they come straight back to the page as field errors.
func (h *BookingHandler) QuickBook(c echo.Context) error {
	eventID, ok := pathID(c)
	if !ok {
		return renderError(c, http.StatusBadRequest, "Invalid event ID format.")
	}
	tickets, err := strconv.Atoi(c.FormValue("tickets"))
	if err != nil {
		return redirectErr(c, bookPath(eventID), "Please select at least 1 ticket")
	}

	ctx := c.Request().Context()
	token := session.Token(c)
	event, err := h.API.GetEvent(ctx, token, eventID)
	if err != nil {
		if api.IsNotFound(err) {
			return renderError(c, http.StatusNotFound, "Event not found - the event with this ID doesn't exist.")
		}
		return redirectErr(c, bookPath(eventID), api.UserMessage(err, "Failed to load event."))
	}

	ident := mustIdentity(c)
	_, err = booking.QuickBook(ctx, h.API, token, ident, event, tickets, c.FormValue("specialRequests"))
	if err != nil {
		var ve *booking.ValidationError
		if errors.As(err, &ve) {
			return redirectErr(c, bookPath(eventID), ve.Message)
		}
		return redirectErr(c, bookPath(eventID), api.UserMessage(err, "Booking failed. Please try again."))
	}
	return redirectMsg(c, guard.HomePath(ident.Role), "Booking confirmed!")
}

func bookPath(eventID int64) string {
	return fmt.Sprintf("/book/%d", eventID)
}
