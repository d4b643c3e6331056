// Package catalog defines the Product value type and a read-only catalog
// the stores take product snapshots from.
package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Product is a catalog item. Prices are decimal currency amounts.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images,omitempty"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Colors      []string        `json:"colors,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Validate checks a product at the catalog boundary. The cart trusts
// products it is handed and does not call this again.
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	case p.Name == "":
		return fmt.Errorf("%w: %s: empty name", ErrInvalidProduct, p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: %s: negative price", ErrInvalidProduct, p.ID)
	case p.Stock < 0:
		return fmt.Errorf("%w: %s: negative stock", ErrInvalidProduct, p.ID)
	}
	return nil
}

// InStock reports whether at least qty units are available.
func (p Product) InStock(qty int) bool {
	return qty <= p.Stock
}

// HasColor reports whether color is one of the product's variants. Products
// without declared colors accept only the empty variant.
func (p Product) HasColor(color string) bool {
	if color == "" {
		return true
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
