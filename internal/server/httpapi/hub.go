package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/storefront"
)

type visitor struct {
	stores   *storefront.Stores
	lastSeen time.Time
}

// Hub keeps one hydrated store set per visitor id. Idle visitors are
// dropped by Sweep; their state stays in the bridge and is hydrated again
// on the next request.
type Hub struct {
	sf *storefront.Storefront

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
	load     func(ctx context.Context, id string) *storefront.Stores
}

func NewHub(sf *storefront.Storefront) *Hub {
	return &Hub{sf: sf, visitors: make(map[string]*visitor), now: time.Now, load: sf.Stores}
}

// Stores returns the store set of visitor id, hydrating it on first use.
// Hydration reads the bridge without holding the hub lock; when two
// requests race, the first stored set wins and the other is closed.
func (h *Hub) Stores(ctx context.Context, id string) *storefront.Stores {
	if s, ok := h.touch(id); ok {
		return s
	}

	fresh := h.load(ctx, id)

	h.mu.Lock()
	v, ok := h.visitors[id]
	if !ok {
		v = &visitor{stores: fresh}
		h.visitors[id] = v
	}
	v.lastSeen = h.now()
	h.mu.Unlock()

	if ok {
		fresh.Close()
	}
	return v.stores
}

func (h *Hub) touch(id string) (*storefront.Stores, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.visitors[id]
	if !ok {
		return nil, false
	}
	v.lastSeen = h.now()
	return v.stores, true
}

// Sweep closes and forgets visitors idle for longer than idle and returns
// how many were dropped.
func (h *Hub) Sweep(idle time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-idle)
	n := 0
	for id, v := range h.visitors {
		if v.lastSeen.Before(cutoff) {
			v.stores.Close()
			delete(h.visitors, id)
			n++
		}
	}
	return n
}

// Len reports how many visitors are currently hydrated.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.visitors)
}

// Close closes every visitor's stores.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, v := range h.visitors {
		v.stores.Close()
		delete(h.visitors, id)
	}
}
