package booking

import (
	"sync"
	"time"

	"github.com/goticket/goticket-web/internal/model"
)

// Registry maps session ids to live workflows, so seat toggles posted
// across separate requests land on the same state.  Entries are evicted
// on logout and after an idle TTL; eviction happens inline on access, no
// sweeper goroutine.
type Registry struct {
	gw  Gateway
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	flows map[string]*registryEntry
}

type registryEntry struct {
	flow     *Workflow
	lastSeen time.Time
}

// NewRegistry builds a Registry with the given idle TTL.
func NewRegistry(gw Gateway, ttl time.Duration) *Registry {
	return &Registry{
		gw:    gw,
		ttl:   ttl,
		now:   time.Now,
		flows: make(map[string]*registryEntry),
	}
}

// Get returns the workflow for a session, creating an idle one if absent.
func (r *Registry) Get(sid string, ident model.Identity, token string) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, e := range r.flows {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.flows, key)
		}
	}

	e, ok := r.flows[sid]
	if !ok {
		e = &registryEntry{flow: New(r.gw, ident, token)}
		r.flows[sid] = e
	}
	e.lastSeen = now
	return e.flow
}

// Drop discards a session's workflow.  Called on logout.
func (r *Registry) Drop(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flows, sid)
}
