package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/model"
	"github.com/goticket/goticket-web/internal/session"
	"github.com/goticket/goticket-web/internal/stats"
)

// backendDateTime is the wire format the backend accepts for event times.
const backendDateTime = "2006-01-02T15:04:05"

// formDateTime is what an <input type="datetime-local"> submits.
const formDateTime = "2006-01-02T15:04"

// ManagerHandler serves the manager dashboard and event CRUD pages.
type ManagerHandler struct {
	API   *api.Client
	Stats *stats.Refresher
}

func NewManagerHandler(client *api.Client, s *stats.Refresher) *ManagerHandler {
	return &ManagerHandler{API: client, Stats: s}
}

// Dashboard shows the live platform stats alongside the event list.  The
// stats come from the background refresher, never fetched inline.
func (h *ManagerHandler) Dashboard(c echo.Context) error {
	data := page(c, "Manager dashboard")
	snap := h.Stats.Snapshot()
	data["Stats"] = snap
	data["Revenue"] = model.FormatCents(snap.RevenueCents)

	events, err := h.API.ListEvents(c.Request().Context(), session.Token(c))
	if err != nil {
		data["Err"] = api.UserMessage(err, "Could not load events.")
	}
	data["Events"] = events
	return c.Render(http.StatusOK, "manager_dashboard.html", data)
}

// ManageEvents lists events with edit/delete controls.
func (h *ManagerHandler) ManageEvents(c echo.Context) error {
	data := page(c, "Manage events")
	events, err := h.API.ListEvents(c.Request().Context(), session.Token(c))
	if err != nil {
		data["Err"] = api.UserMessage(err, "Could not load events.")
	}
	data["Events"] = events
	return c.Render(http.StatusOK, "manager_events.html", data)
}

// CreateEventPage renders an empty event form.
func (h *ManagerHandler) CreateEventPage(c echo.Context) error {
	data := page(c, "Create event")
	data["Action"] = "/manager/create-event"
	data["Form"] = api.EventRequest{}
	data["Errors"] = map[string]string{}
	return c.Render(http.StatusOK, "event_form.html", data)
}

// CreateEvent validates the form and creates the event.  Field failures
// re-render the form with the entered values; nothing is sent to the
// backend until the form is clean.
func (h *ManagerHandler) CreateEvent(c echo.Context) error {
	form, fieldErrs := bindEventForm(c)
	if len(fieldErrs) > 0 {
		data := page(c, "Create event")
		data["Action"] = "/manager/create-event"
		data["Form"] = form
		data["Errors"] = fieldErrs
		return c.Render(http.StatusBadRequest, "event_form.html", data)
	}
	if _, err := h.API.CreateEvent(c.Request().Context(), session.Token(c), form); err != nil {
		data := page(c, "Create event")
		data["Action"] = "/manager/create-event"
		data["Form"] = form
		data["Errors"] = map[string]string{}
		data["Err"] = api.UserMessage(err, "Could not create the event. Please try again.")
		return c.Render(http.StatusBadGateway, "event_form.html", data)
	}
	return redirectMsg(c, "/manager/events", "Event created.")
}

// EditEventPage loads an event into the form.
func (h *ManagerHandler) EditEventPage(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return renderError(c, http.StatusBadRequest, "Invalid event ID format.")
	}
	event, err := h.API.GetEvent(c.Request().Context(), session.Token(c), id)
	if err != nil {
		if api.IsNotFound(err) {
			return renderError(c, http.StatusNotFound, "Event not found - the event with this ID doesn't exist.")
		}
		return renderError(c, http.StatusBadGateway, api.UserMessage(err, "Could not load the event."))
	}
	data := page(c, "Edit event")
	data["Action"] = "/manager/edit-event/" + strconv.FormatInt(id, 10)
	data["Form"] = api.EventRequest{
		Title:       event.Title,
		Description: event.Description,
		Venue:       event.Venue,
		DateTime:    event.DateTime,
		Price:       event.Price,
		TotalSeats:  event.TotalSeats,
		Category:    event.Category,
	}
	data["Errors"] = map[string]string{}
	return c.Render(http.StatusOK, "event_form.html", data)
}

// EditEvent validates and saves changes to an event.
func (h *ManagerHandler) EditEvent(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return renderError(c, http.StatusBadRequest, "Invalid event ID format.")
	}
	form, fieldErrs := bindEventForm(c)
	action := "/manager/edit-event/" + strconv.FormatInt(id, 10)
	if len(fieldErrs) > 0 {
		data := page(c, "Edit event")
		data["Action"] = action
		data["Form"] = form
		data["Errors"] = fieldErrs
		return c.Render(http.StatusBadRequest, "event_form.html", data)
	}
	if _, err := h.API.UpdateEvent(c.Request().Context(), session.Token(c), id, form); err != nil {
		data := page(c, "Edit event")
		data["Action"] = action
		data["Form"] = form
		data["Errors"] = map[string]string{}
		data["Err"] = api.UserMessage(err, "Could not save the event. Please try again.")
		return c.Render(http.StatusBadGateway, "event_form.html", data)
	}
	return redirectMsg(c, "/manager/events", "Event updated.")
}

// DeleteEvent removes an event.  Terminal: the backend cascades seats and
// booking visibility.
func (h *ManagerHandler) DeleteEvent(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return renderError(c, http.StatusBadRequest, "Invalid event ID format.")
	}
	if err := h.API.DeleteEvent(c.Request().Context(), session.Token(c), id); err != nil {
		return redirectErr(c, "/manager/events", api.UserMessage(err, "Could not delete the event."))
	}
	return redirectMsg(c, "/manager/events", "Event deleted.")
}

// bindEventForm parses and validates the event form.  Returned field
// errors are keyed by input name for inline display.
func bindEventForm(c echo.Context) (api.EventRequest, map[string]string) {
	fieldErrs := map[string]string{}
	form := api.EventRequest{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Venue:       strings.TrimSpace(c.FormValue("venue")),
		Category:    strings.TrimSpace(c.FormValue("category")),
	}

	if form.Title == "" {
		fieldErrs["title"] = "Title is required"
	}
	if form.Venue == "" {
		fieldErrs["venue"] = "Venue is required"
	}

	raw := strings.TrimSpace(c.FormValue("dateTime"))
	if raw == "" {
		fieldErrs["dateTime"] = "Date and time are required"
	} else {
		t, err := time.ParseInLocation(formDateTime, raw, time.Local)
		if err != nil {
			t, err = time.ParseInLocation(backendDateTime, raw, time.Local)
		}
		switch {
		case err != nil:
			fieldErrs["dateTime"] = "Invalid date and time"
		case !t.After(time.Now()):
			fieldErrs["dateTime"] = "Event must be in the future"
		default:
			form.DateTime = t.Format(backendDateTime)
		}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
	if err != nil || price < 0 {
		fieldErrs["price"] = "Price must be zero or more"
	} else {
		form.Price = price
	}

	seats, err := strconv.Atoi(strings.TrimSpace(c.FormValue("totalSeats")))
	if err != nil || seats < 1 {
		fieldErrs["totalSeats"] = "Total seats must be at least 1"
	} else {
		form.TotalSeats = seats
	}

	return form, fieldErrs
}
