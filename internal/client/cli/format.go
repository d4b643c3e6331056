package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/furnistore/internal/cart"
	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/dmitrijs2005/furnistore/internal/notify"
	"github.com/dmitrijs2005/furnistore/internal/session"
)

func formatProduct(p catalog.Product) string {
	stock := fmt.Sprintf("%d in stock", p.Stock)
	if p.Stock == 0 {
		stock = "out of stock"
	}
	return fmt.Sprintf("%-3s %-24s %10s  %-12s %s", p.ID, p.Name, p.Price.StringFixed(2), p.Category, stock)
}

func formatProductDetail(p catalog.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (#%s)\n", p.Name, p.ID)
	fmt.Fprintf(&b, "  price:    %s\n", p.Price.StringFixed(2))
	fmt.Fprintf(&b, "  category: %s\n", p.Category)
	fmt.Fprintf(&b, "  stock:    %d\n", p.Stock)
	if len(p.Colors) > 0 {
		fmt.Fprintf(&b, "  colors:   %s\n", strings.Join(p.Colors, ", "))
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "  %s\n", p.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatCart(snap cart.Snapshot) string {
	if len(snap.Lines) == 0 {
		return "Your cart is empty."
	}
	var b strings.Builder
	for _, l := range snap.Lines {
		name := l.Product.Name
		if l.Variant != "" {
			name = fmt.Sprintf("%s (%s)", name, l.Variant)
		}
		fmt.Fprintf(&b, "%-28s %-30s %3d x %10s = %10s\n",
			l.ID, name, l.Quantity, l.Product.Price.StringFixed(2), l.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "%d item(s), total %s", snap.Count, snap.Total.StringFixed(2))
	return b.String()
}

func formatIdentity(id session.Identity) string {
	s := fmt.Sprintf("%s <%s> id=%s", id.Name, id.Email, id.ID)
	if id.Phone != "" {
		s += " phone=" + id.Phone
	}
	if id.IsAdmin {
		s += " [admin]"
	}
	return s
}

func formatNotice(n notify.Notification) string {
	s := fmt.Sprintf("[%s] %s", n.Kind, n.Title)
	if n.Description != "" {
		s += ": " + n.Description
	}
	return s
}
