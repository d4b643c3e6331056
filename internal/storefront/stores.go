package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/cart"
	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/dmitrijs2005/furnistore/internal/notify"
	"github.com/dmitrijs2005/furnistore/internal/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownVariant    = errors.New("unknown variant")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Stores is one visitor's cart, session and notifications.
type Stores struct {
	Namespace string
	Cart      *cart.Store
	Session   *session.Store
	Notices   *notify.Queue

	catalog catalog.Catalog
	log     logging.Logger
}

// AddProduct looks productID up in the catalog and adds it to the cart,
// queueing a notice the way the storefront does after "Add to cart".
func (s *Stores) AddProduct(ctx context.Context, productID string, quantity int, variant string) (bool, error) {
	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return false, err
	}
	if !p.HasColor(variant) {
		return false, fmt.Errorf("%w: %s has no %q", ErrUnknownVariant, p.Name, variant)
	}
	if !s.Cart.AddToCart(ctx, p, quantity, variant) {
		return false, nil
	}
	s.Notices.Success("Added to cart", fmt.Sprintf("%d x %s", quantity, p.Name))
	return true, nil
}

// Login signs in and queues the matching notice.
func (s *Stores) Login(ctx context.Context, creds session.Credentials) (bool, error) {
	ok, err := s.Session.Login(ctx, creds)
	switch {
	case err != nil:
		s.Notices.Error("Login failed", "The sign-in service is unavailable. Please try again.")
	case !ok:
		s.Notices.Error("Login failed", "Invalid email or password.")
	default:
		id, _ := s.Session.Identity()
		s.Notices.Success("Welcome back", id.Name)
	}
	return ok, err
}

// Register creates an account and queues the matching notice.
func (s *Stores) Register(ctx context.Context, reg session.Registration) (bool, error) {
	ok, err := s.Session.Register(ctx, reg)
	switch {
	case err != nil:
		s.Notices.Error("Registration failed", "The sign-up service is unavailable. Please try again.")
	case !ok:
		s.Notices.Error("Registration failed", "That email is already registered or the form is incomplete.")
	default:
		s.Notices.Success("Account created", "You are now signed in.")
	}
	return ok, err
}

// Receipt confirms a placed order.
type Receipt struct {
	OrderID  string          `json:"order_id"`
	Email    string          `json:"email"`
	Lines    []cart.Line     `json:"lines"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}

// Checkout places the order for the signed-in visitor. Stock is checked
// here rather than when adding to the cart; any shortfalls are returned
// together with ErrInsufficientStock and the cart is left as it is. On
// success the ordered lines leave the cart; anything added while the order
// was being checked stays.
func (s *Stores) Checkout(ctx context.Context) (*Receipt, []cart.Shortfall, error) {
	id, ok := s.Session.Identity()
	if !ok {
		s.Notices.Warning("Sign in required", "Please sign in to check out.")
		return nil, nil, common.ErrorUnauthorized
	}

	snap := s.Cart.Snapshot()
	if len(snap.Lines) == 0 {
		s.Notices.Info("Your cart is empty", "")
		return nil, nil, ErrEmptyCart
	}

	short, err := s.Cart.Preflight(ctx, s.catalog)
	if err != nil {
		s.Notices.Error("Checkout failed", "Could not verify stock. Please try again.")
		return nil, nil, err
	}
	if len(short) > 0 {
		s.Notices.Error("Some items are unavailable", short[0].String())
		return nil, short, ErrInsufficientStock
	}

	receipt := &Receipt{
		OrderID:  uuid.NewString(),
		Email:    id.Email,
		Lines:    snap.Lines,
		Count:    snap.Count,
		Total:    snap.Total,
		PlacedAt: time.Now(),
	}
	s.Cart.RemoveOrdered(ctx, snap.Lines)
	s.Notices.Success("Order placed", fmt.Sprintf("Order %s, total %s", receipt.OrderID[:8], receipt.Total.StringFixed(2)))
	s.log.Info(ctx, "order placed", "order", receipt.OrderID, "user", id.ID, "total", receipt.Total.String())

	return receipt, nil, nil
}

// Reset empties the cart, signs out and drops all notices.
func (s *Stores) Reset(ctx context.Context) {
	s.Cart.ClearCart(ctx)
	s.Session.Logout(ctx)
	s.Notices.Clear()
}

// Close stops pending notification timers.
func (s *Stores) Close() {
	s.Notices.Close()
}
