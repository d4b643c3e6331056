package catalog

import "github.com/shopspring/decimal"

// Seed returns the demo furniture assortment.
func Seed() []Product {
	return []Product{
		{
			ID: "1", Name: "Modern Sofa", Price: decimal.RequireFromString("899.99"),
			Images: []string{"/images/sofa-1.jpg", "/images/sofa-2.jpg"}, Stock: 15, Category: "living-room",
			Colors:      []string{"gray", "navy", "beige"},
			Description: "Three-seat sofa with solid oak legs and removable covers.",
		},
		{
			ID: "2", Name: "Oak Dining Table", Price: decimal.RequireFromString("649.00"),
			Images: []string{"/images/table-1.jpg"}, Stock: 8, Category: "dining",
			Description: "Extendable table that seats six to eight.",
		},
		{
			ID: "3", Name: "Velvet Armchair", Price: decimal.RequireFromString("349.50"),
			Images: []string{"/images/armchair-1.jpg"}, Stock: 20, Category: "living-room",
			Colors: []string{"emerald", "mustard"},
		},
		{
			ID: "4", Name: "Queen Platform Bed", Price: decimal.RequireFromString("1199.00"),
			Images: []string{"/images/bed-1.jpg", "/images/bed-2.jpg"}, Stock: 5, Category: "bedroom",
			Colors: []string{"walnut", "white"},
		},
		{
			ID: "5", Name: "Bedside Table", Price: decimal.RequireFromString("129.99"),
			Images: []string{"/images/nightstand-1.jpg"}, Stock: 30, Category: "bedroom",
		},
		{
			ID: "6", Name: "Ergonomic Office Chair", Price: decimal.RequireFromString("279.00"),
			Images: []string{"/images/chair-1.jpg"}, Stock: 12, Category: "office",
			Colors: []string{"black", "gray"},
		},
		{
			ID: "7", Name: "Standing Desk", Price: decimal.RequireFromString("499.00"),
			Images: []string{"/images/desk-1.jpg"}, Stock: 0, Category: "office",
			Description: "Dual-motor height adjustable desk.",
		},
		{
			ID: "8", Name: "Bookshelf", Price: decimal.RequireFromString("189.90"),
			Images: []string{"/images/shelf-1.jpg"}, Stock: 9, Category: "living-room",
		},
	}
}
