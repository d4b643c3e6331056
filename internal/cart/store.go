package cart

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/bridge"
	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/shopspring/decimal"
)

// Store holds the cart lines. Every mutation runs under the store mutex,
// then persists the lines and notifies subscribers with a fresh snapshot.
// Aggregates are never stored; they are derived from lines on each read.
type Store struct {
	mu    sync.Mutex
	lines []Line

	json *bridge.JSON
	log  logging.Logger
	now  func() time.Time

	subsMu sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

type Option func(*Store)

// WithClock overrides time.Now for line timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore hydrates a cart from b. Any failure to read or decode the stored
// lines yields an empty cart.
func NewStore(ctx context.Context, b bridge.Bridge, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		json: bridge.NewJSON(b, log),
		log:  log.With("store", "cart"),
		now:  time.Now,
		subs: make(map[int]func(Snapshot)),
	}
	for _, o := range opts {
		o(s)
	}

	var stored []Line
	if s.json.Read(ctx, common.CartKey, &stored) {
		s.lines = sanitize(stored)
		if dropped := len(stored) - len(s.lines); dropped > 0 {
			s.log.Warn(ctx, "dropped invalid cart lines on hydration", "dropped", dropped)
		}
	}
	s.log.Debug(ctx, "cart hydrated", "lines", len(s.lines))

	return s
}

func sanitize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ID == "" || l.Product.ID == "" || l.Quantity < 1 {
			continue
		}
		out = append(out, l)
	}
	return out
}

// AddToCart adds quantity units of product. A line with the same product and
// variant has its quantity increased; otherwise a new line is appended.
// Merged quantities are not capped against stock; Preflight reports lines
// that exceed it. Returns false, changing nothing, when quantity < 1 or the
// product has no id.
func (s *Store) AddToCart(ctx context.Context, product catalog.Product, quantity int, variant string) bool {
	if quantity < 1 || product.ID == "" {
		return false
	}

	s.mutate(ctx, func() bool {
		for i := range s.lines {
			if s.lines[i].matches(product.ID, variant) {
				s.lines[i].Quantity += quantity
				return true
			}
		}
		at := s.now()
		s.lines = append(s.lines, Line{
			ID:       newLineID(product.ID, at),
			Product:  product,
			Quantity: quantity,
			Variant:  variant,
			AddedAt:  at,
		}.clone())
		return true
	})
	return true
}

// RemoveFromCart removes the line with lineID. Removing an unknown line is a
// no-op and returns false.
func (s *Store) RemoveFromCart(ctx context.Context, lineID string) bool {
	return s.mutate(ctx, func() bool {
		for i := range s.lines {
			if s.lines[i].ID == lineID {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
				return true
			}
		}
		return false
	})
}

// UpdateQuantity sets the quantity of a line. Quantities below one are
// ignored rather than treated as a removal.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	return s.mutate(ctx, func() bool {
		for i := range s.lines {
			if s.lines[i].ID == lineID {
				s.lines[i].Quantity = quantity
				return true
			}
		}
		return false
	})
}

// ClearCart removes every line.
func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, func() bool {
		s.lines = nil
		return true
	})
}

// RemoveOrdered takes the quantities of ordered off the matching lines and
// drops lines that reach zero. Lines added or topped up after ordered was
// read keep the difference. It returns false when nothing matched.
func (s *Store) RemoveOrdered(ctx context.Context, ordered []Line) bool {
	return s.mutate(ctx, func() bool {
		changed := false
		for _, o := range ordered {
			i := slices.IndexFunc(s.lines, func(l Line) bool { return l.ID == o.ID })
			if i < 0 {
				continue
			}
			changed = true
			if s.lines[i].Quantity > o.Quantity {
				s.lines[i].Quantity -= o.Quantity
				continue
			}
			s.lines = slices.Delete(s.lines, i, i+1)
		}
		return changed
	})
}

// Snapshot returns a copy of the lines with derived count and total.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newSnapshot(s.lines)
}

func (s *Store) Lines() []Line {
	return s.Snapshot().Lines
}

func (s *Store) Count() int {
	return s.Snapshot().Count
}

func (s *Store) Total() decimal.Decimal {
	return s.Snapshot().Total
}

// Line looks a line up by id.
func (s *Store) Line(lineID string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lines {
		if l.ID == lineID {
			return l.clone(), true
		}
	}
	return Line{}, false
}

// Subscribe registers fn to receive a snapshot after every applied
// mutation. The returned function unregisters it.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// mutate applies fn under the lock. When fn reports a change, the lines are
// persisted and subscribers notified after the lock is released.
func (s *Store) mutate(ctx context.Context, fn func() bool) bool {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return false
	}
	snap := newSnapshot(s.lines)
	if err := s.json.Write(ctx, common.CartKey, snap.Lines); err != nil {
		s.log.Warn(ctx, "cart not persisted", "error", err)
	}
	s.mu.Unlock()

	s.publish(snap)
	return true
}

func (s *Store) publish(snap Snapshot) {
	s.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
