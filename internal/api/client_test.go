package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goticket/goticket-web/internal/model"
)

func testServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := c.ListEvents(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestEmptyTokenSendsNoAuthHeader(t *testing.T) {
	var hadAuth bool
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	})

	_, err := c.ListEvents(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestErrorDecodesMessageField(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Account not approved"}`))
	})

	_, err := c.Login(context.Background(), "m@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Account not approved", UserMessage(err, "fallback"))
	assert.True(t, IsUnauthorized(err))
}

func TestErrorDecodesErrorField(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Seat already booked"}`))
	})

	_, err := c.GetEvent(context.Background(), "tok", 1)
	require.Error(t, err)
	assert.Equal(t, "Seat already booked", UserMessage(err, "fallback"))
}

func TestErrorWithoutBodyUsesFallback(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetEvent(context.Background(), "tok", 1)
	require.Error(t, err)
	assert.Equal(t, "fallback", UserMessage(err, "fallback"))
}

func TestNotFound(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Event not found"}`))
	})

	_, err := c.GetEvent(context.Background(), "tok", 99)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsTransport(err))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(srv.URL, time.Second)
	srv.Close()

	_, err := c.ListEvents(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.False(t, IsNotFound(err))
}

type memEventCache struct {
	events []model.Event
	ok     bool
	sets   int
}

func (m *memEventCache) Get(ctx context.Context) ([]model.Event, bool) { return m.events, m.ok }
func (m *memEventCache) Set(ctx context.Context, events []model.Event) {
	m.events, m.ok = events, true
	m.sets++
}

func TestListEventsCacheHitSkipsBackend(t *testing.T) {
	hits := 0
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[]`))
	})
	cache := &memEventCache{events: []model.Event{{ID: 1, Title: "Cached"}}, ok: true}
	c.WithEventCache(cache)

	events, err := c.ListEvents(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Cached", events[0].Title)
	assert.Zero(t, hits)
}

func TestListEventsCacheMissFillsCache(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"Fresh"}]`))
	})
	cache := &memEventCache{}
	c.WithEventCache(cache)

	events, err := c.ListEvents(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, "Fresh", cache.events[0].Title)
}

func TestGetEventSkipsCache(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/7", r.URL.Path)
		w.Write([]byte(`{"id":7,"title":"Live"}`))
	})
	c.WithEventCache(&memEventCache{events: []model.Event{{ID: 7, Title: "Stale"}}, ok: true})

	ev, err := c.GetEvent(context.Background(), "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, "Live", ev.Title)
}

func TestCreateBookingPayload(t *testing.T) {
	var body string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Write([]byte(`{"id":5,"status":"BOOKED"}`))
	})

	booked, err := c.CreateBooking(context.Background(), "tok", model.BookingRequest{
		User:        model.Ref{ID: 42},
		Event:       model.Ref{ID: 1},
		SeatsBooked: []model.Ref{{ID: 11}, {ID: 13}},
		Status:      model.BookingStatusBooked,
		BookingDate: "2026-08-29T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), booked.ID)
	assert.JSONEq(t, `{
		"user": {"id": 42},
		"event": {"id": 1},
		"seatsBooked": [{"id": 11}, {"id": 13}],
		"status": "BOOKED",
		"bookingDate": "2026-08-29T10:00:00Z"
	}`, body)
}

func TestMalformedResponse(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "not a number"`))
	})

	_, err := c.GetEvent(context.Background(), "tok", 1)
	require.Error(t, err)
	assert.Equal(t, "malformed response", UserMessage(err, "x"))
}
