package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goticket/goticket-web/internal/model"
)

// EventCache caches the event list between backend fetches.  A nil cache
// disables caching entirely; see the cache package for the Redis-backed
// implementation.
type EventCache interface {
	Get(ctx context.Context) ([]model.Event, bool)
	Set(ctx context.Context, events []model.Event)
}

// WithEventCache attaches an event-list cache to the client.  Only
// ListEvents consults it; detail and seat fetches always hit the backend
// because booking decisions must not run on stale data.
func (c *Client) WithEventCache(ec EventCache) *Client {
	c.events = ec
	return c
}

// ListEvents returns all events visible to the caller.
func (c *Client) ListEvents(ctx context.Context, token string) ([]model.Event, error) {
	if c.events != nil {
		if cached, ok := c.events.Get(ctx); ok {
			return cached, nil
		}
	}
	var events []model.Event
	if err := c.do(ctx, http.MethodGet, "/api/events", token, nil, &events); err != nil {
		return nil, err
	}
	if c.events != nil {
		c.events.Set(ctx, events)
	}
	return events, nil
}

// GetEvent fetches one event by id.
func (c *Client) GetEvent(ctx context.Context, token string, id int64) (*model.Event, error) {
	var ev model.Event
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/events/%d", id), token, nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// EventRequest carries the manager-editable fields for create and update.
type EventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Venue       string  `json:"venue"`
	DateTime    string  `json:"dateTime"`
	Price       float64 `json:"price"`
	TotalSeats  int     `json:"totalSeats"`
	Category    string  `json:"category"`
}

// CreateEvent creates an event owned by the calling manager.
func (c *Client) CreateEvent(ctx context.Context, token string, req EventRequest) (*model.Event, error) {
	var ev model.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", token, req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// UpdateEvent saves changes to an existing event.
func (c *Client) UpdateEvent(ctx context.Context, token string, id int64, req EventRequest) (*model.Event, error) {
	var ev model.Event
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/events/%d", id), token, req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// DeleteEvent removes an event.  Deletion is terminal; the backend owns
// the cascade to seats and bookings.
func (c *Client) DeleteEvent(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/events/%d", id), token, nil, nil)
}

// ListSeats fetches the raw, unordered seat inventory of an event.  The
// seatmap package owns the deterministic ordering.
func (c *Client) ListSeats(ctx context.Context, token string, eventID int64) ([]model.Seat, error) {
	var seats []model.Seat
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/events/%d/seats", eventID), token, nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}
