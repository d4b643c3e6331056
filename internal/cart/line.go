// Package cart implements the cart store: line items with merge-on-add
// semantics, derived count/total, and persistence through a bridge.
package cart

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one product (and optional variant, e.g. a color) with a quantity
// of at least one. Product is a snapshot taken when the line was created; it
// is not re-validated against the catalog.
type Line struct {
	ID       string          `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Variant  string          `json:"variant,omitempty"`
	AddedAt  time.Time       `json:"added_at"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// clone copies l including the product's slices.
func (l Line) clone() Line {
	l.Product.Images = slices.Clone(l.Product.Images)
	l.Product.Colors = slices.Clone(l.Product.Colors)
	return l
}

func (l Line) matches(productID, variant string) bool {
	return l.Product.ID == productID && l.Variant == variant
}

// newLineID derives a line id from the product id and creation time. The
// random suffix keeps ids unique when two lines are created within the same
// millisecond.
func newLineID(productID string, at time.Time) string {
	return fmt.Sprintf("%s-%d-%s", productID, at.UnixMilli(), uuid.NewString()[:8])
}

// Snapshot is the full cart state at one point in time. Count and Total are
// always derived from Lines.
type Snapshot struct {
	Lines []Line          `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func newSnapshot(lines []Line) Snapshot {
	s := Snapshot{
		Lines: make([]Line, len(lines)),
		Total: decimal.Zero,
	}
	for i, l := range lines {
		s.Lines[i] = l.clone()
		s.Count += l.Quantity
		s.Total = s.Total.Add(l.Subtotal())
	}
	return s
}
