package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Catalog supplies products by identifier.
type Catalog interface {
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, filter Filter) ([]Product, error)
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Category string
	Query    string
	InStock  bool
}

func (f Filter) match(p Product) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.InStock && p.Stock == 0 {
		return false
	}
	return true
}

// Memory is an in-memory Catalog with optional simulated latency, standing
// in for the product backend.
type Memory struct {
	mu       sync.RWMutex
	products map[string]Product
	latency  time.Duration
}

// NewMemory validates products and builds a catalog from them.
func NewMemory(products []Product, latency time.Duration) (*Memory, error) {
	m := &Memory{products: make(map[string]Product, len(products)), latency: latency}
	for _, p := range products {
		if err := m.Put(p); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Put adds or replaces a product after validating it.
func (m *Memory) Put(p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.products[p.ID] = p
	m.mu.Unlock()
	return nil
}

// SetStock adjusts the stock of an existing product.
func (m *Memory) SetStock(id string, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	p.Stock = stock
	if err := p.Validate(); err != nil {
		return err
	}
	m.products[id] = p
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (Product, error) {
	if err := m.wait(ctx); err != nil {
		return Product{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return p, nil
}

// List returns matching products ordered by id.
func (m *Memory) List(ctx context.Context, filter Filter) ([]Product, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		if filter.match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
