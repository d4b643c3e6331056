package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/storefront"
)

// Products lists the catalog, optionally limited to one category.
func (a *App) Products(ctx context.Context, args []string) error {
	var f catalog.Filter
	if len(args) > 0 {
		f.Category = args[0]
	}
	products, err := a.sf.Catalog.List(ctx, f)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return nil
	}
	for _, p := range products {
		fmt.Fprintln(a.out, formatProduct(p))
	}
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.sf.Catalog.Get(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, formatProductDetail(p))
	return nil
}

// Add puts a product into the cart. Success is reported through the
// notification printed by the store.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errUsage
	}
	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errUsage
		}
		qty = n
	}
	variant := ""
	if len(args) > 2 {
		variant = args[2]
	}

	ok, err := a.stores.AddProduct(ctx, args[0], qty, variant)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Quantity must be at least 1.")
	}
	return nil
}

func (a *App) Cart(ctx context.Context, args []string) error {
	fmt.Fprintln(a.out, formatCart(a.stores.Cart.Snapshot()))
	return nil
}

func (a *App) Quantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return errUsage
	}
	if !a.stores.Cart.UpdateQuantity(ctx, args[0], n) {
		fmt.Fprintln(a.out, "Nothing changed (unknown line or quantity below 1).")
		return nil
	}
	fmt.Fprintln(a.out, formatCart(a.stores.Cart.Snapshot()))
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if !a.stores.Cart.RemoveFromCart(ctx, args[0]) {
		fmt.Fprintln(a.out, "No such line.")
		return nil
	}
	a.stores.Notices.Info("Removed from cart", "")
	return nil
}

func (a *App) Clear(ctx context.Context, args []string) error {
	a.stores.Cart.ClearCart(ctx)
	a.stores.Notices.Info("Cart cleared", "")
	return nil
}

// Checkout places the order. Refusals (not signed in, empty cart, stock
// shortfalls) are already reported as notifications, so only the shortfall
// details are printed here.
func (a *App) Checkout(ctx context.Context, args []string) error {
	receipt, short, err := a.stores.Checkout(ctx)
	switch {
	case errors.Is(err, storefront.ErrInsufficientStock):
		for _, s := range short {
			fmt.Fprintln(a.out, "  "+s.String())
		}
		return nil
	case errors.Is(err, storefront.ErrEmptyCart), errors.Is(err, common.ErrorUnauthorized):
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(a.out, "Order %s: %d item(s), total %s\n", receipt.OrderID, receipt.Count, receipt.Total.StringFixed(2))
	return nil
}
