// Package stats keeps the manager dashboard's live figures fresh.  A
// single Refresher goroutine re-fetches on a fixed interval and publishes
// an immutable snapshot; page renders read the snapshot and never block on
// the backend.  The goroutine stops with its context, so shutdown does not
// leak a ticker.
package stats

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/model"
)

// Source is the slice of the API client the refresher polls.
type Source interface {
	ListEvents(ctx context.Context, token string) ([]model.Event, error)
	ListBookings(ctx context.Context, token string) ([]model.Booking, error)
}

// Snapshot is one refresh result.  RevenueCents sums booking totals in
// minor units.  UpdatedAt is zero until the first successful refresh.
type Snapshot struct {
	TotalEvents   int
	TotalBookings int
	RevenueCents  int64
	UpdatedAt     time.Time
}

// Refresher polls the backend and caches the latest snapshot.
type Refresher struct {
	src      Source
	interval time.Duration
	log      *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// NewRefresher builds a Refresher polling at the given interval.
func NewRefresher(src Source, interval time.Duration, log *zap.Logger) *Refresher {
	return &Refresher{src: src, interval: interval, log: log}
}

// Run refreshes once immediately and then on every tick until the context
// is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Snapshot returns the most recent figures without blocking on the
// backend.
func (r *Refresher) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// refresh pulls events and bookings.  The stats are dashboard garnish: an
// events failure keeps the previous snapshot, and a missing bookings
// endpoint (older backends 404 it) just zeroes the booking figures.
func (r *Refresher) refresh(ctx context.Context) {
	events, err := r.src.ListEvents(ctx, "")
	if err != nil {
		r.log.Warn("stats refresh failed", zap.Error(err))
		return
	}
	next := Snapshot{TotalEvents: len(events), UpdatedAt: time.Now()}

	bookings, err := r.src.ListBookings(ctx, "")
	if err != nil {
		if !api.IsNotFound(err) {
			r.log.Warn("stats bookings fetch failed", zap.Error(err))
		}
	} else {
		next.TotalBookings = len(bookings)
		for _, b := range bookings {
			next.RevenueCents += int64(math.Round(b.TotalPrice * 100))
		}
	}

	r.mu.Lock()
	r.snap = next
	r.mu.Unlock()
}
