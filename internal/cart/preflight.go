package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/furnistore/internal/catalog"
)

// Shortfall describes a line that cannot be fulfilled as it stands.
type Shortfall struct {
	LineID    string `json:"line_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	// Discontinued is set when the product is no longer in the catalog.
	Discontinued bool `json:"discontinued,omitempty"`
}

func (s Shortfall) String() string {
	if s.Discontinued {
		return fmt.Sprintf("%s is no longer available", s.Name)
	}
	return fmt.Sprintf("%s: requested %d, only %d in stock", s.Name, s.Requested, s.Available)
}

// Preflight checks every line against current catalog stock. Quantities of
// lines sharing a product (different variants) are summed, since stock is
// tracked per product. The cart is not modified.
func (s *Store) Preflight(ctx context.Context, cat catalog.Catalog) ([]Shortfall, error) {
	lines := s.Lines()

	requested := make(map[string]int, len(lines))
	for _, l := range lines {
		requested[l.Product.ID] += l.Quantity
	}

	var out []Shortfall
	for _, l := range lines {
		p, err := cat.Get(ctx, l.Product.ID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			out = append(out, Shortfall{
				LineID: l.ID, ProductID: l.Product.ID, Name: l.Product.Name,
				Requested: l.Quantity, Discontinued: true,
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("preflight %s: %w", l.Product.ID, err)
		}
		if !p.InStock(requested[p.ID]) {
			out = append(out, Shortfall{
				LineID: l.ID, ProductID: p.ID, Name: p.Name,
				Requested: l.Quantity, Available: p.Stock,
			})
		}
	}
	return out, nil
}

// RefreshPrices replaces stale product snapshots with current catalog data
// and returns how many lines changed. Lines whose product disappeared are
// left alone; Preflight reports them.
func (s *Store) RefreshPrices(ctx context.Context, cat catalog.Catalog) (int, error) {
	current := make(map[string]catalog.Product)
	for _, l := range s.Lines() {
		if _, seen := current[l.Product.ID]; seen {
			continue
		}
		p, err := cat.Get(ctx, l.Product.ID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("refresh %s: %w", l.Product.ID, err)
		}
		current[p.ID] = p
	}

	changed := 0
	s.mutate(ctx, func() bool {
		for i := range s.lines {
			p, ok := current[s.lines[i].Product.ID]
			if !ok || !stale(s.lines[i].Product, p) {
				continue
			}
			s.lines[i].Product = p
			s.lines[i] = s.lines[i].clone()
			changed++
		}
		return changed > 0
	})
	return changed, nil
}

func stale(old, cur catalog.Product) bool {
	return !old.Price.Equal(cur.Price) || old.Name != cur.Name || old.Stock != cur.Stock
}
