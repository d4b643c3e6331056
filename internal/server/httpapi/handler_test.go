package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/cart"
	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/dmitrijs2005/furnistore/internal/notify"
	"github.com/dmitrijs2005/furnistore/internal/session"
	"github.com/dmitrijs2005/furnistore/internal/storefront"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	hub    *Hub
	client *http.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	sf, err := storefront.Open(context.Background(), storefront.Options{
		Backend:        storefront.BackendMemory,
		TokenSecret:    "test",
		NoticeDuration: time.Minute,
	})
	require.NoError(t, err)

	hub := NewHub(sf)
	srv := httptest.NewServer(NewHandler(sf, hub, logging.Discard(), Options{}).Routes())
	t.Cleanup(func() {
		srv.Close()
		hub.Close()
		_ = sf.Close()
	})

	return &testServer{Server: srv, hub: hub, client: newClient(t)}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (ts *testServer) do(t *testing.T, c *http.Client, method, path string, body any, out any) int {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.URL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestProducts(t *testing.T) {
	ts := newTestServer(t)

	var list []catalog.Product
	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodGet, "/api/products?category=office&in_stock=true", nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "6", list[0].ID)

	var p catalog.Product
	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodGet, "/api/products/1", nil, &p))
	assert.Equal(t, "Modern Sofa", p.Name)
	assert.True(t, decimal.RequireFromString("899.99").Equal(p.Price))

	var e ErrorResponse
	assert.Equal(t, http.StatusNotFound, ts.do(t, ts.client, http.MethodGet, "/api/products/404", nil, &e))
	assert.Equal(t, "product_not_found", e.Code)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, ts.client, http.MethodGet, "/api/products?in_stock=maybe", nil, &e))
}

func TestCart_Lifecycle(t *testing.T) {
	ts := newTestServer(t)

	var snap cart.Snapshot
	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodGet, "/api/cart", nil, &snap))
	assert.Empty(t, snap.Lines)

	require.Equal(t, http.StatusCreated, ts.do(t, ts.client, http.MethodPost, "/api/cart/items",
		AddItemRequestDTO{ProductID: "2", Quantity: 2}, &snap))
	assert.Equal(t, 2, snap.Count)
	assert.True(t, decimal.RequireFromString("1298").Equal(snap.Total))

	require.Equal(t, http.StatusCreated, ts.do(t, ts.client, http.MethodPost, "/api/cart/items",
		AddItemRequestDTO{ProductID: "2", Quantity: 3}, &snap))
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 5, snap.Count)
	lineID := snap.Lines[0].ID

	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodPatch, "/api/cart/items/"+lineID,
		UpdateQuantityRequestDTO{Quantity: 1}, &snap))
	assert.Equal(t, 1, snap.Count)

	var e ErrorResponse
	assert.Equal(t, http.StatusBadRequest, ts.do(t, ts.client, http.MethodPatch, "/api/cart/items/"+lineID,
		UpdateQuantityRequestDTO{Quantity: 0}, &e))
	assert.Equal(t, "invalid_quantity", e.Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, ts.client, http.MethodPatch, "/api/cart/items/nope",
		UpdateQuantityRequestDTO{Quantity: 2}, &e))

	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodDelete, "/api/cart/items/"+lineID, nil, &snap))
	assert.Equal(t, 0, snap.Count)
	assert.Equal(t, http.StatusNotFound, ts.do(t, ts.client, http.MethodDelete, "/api/cart/items/"+lineID, nil, &e))
}

func TestCart_AddValidation(t *testing.T) {
	ts := newTestServer(t)
	var e ErrorResponse

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"missing product", AddItemRequestDTO{Quantity: 1}, http.StatusBadRequest, "invalid_product_id"},
		{"negative quantity", AddItemRequestDTO{ProductID: "1", Quantity: -1}, http.StatusBadRequest, "invalid_quantity"},
		{"unknown product", AddItemRequestDTO{ProductID: "99", Quantity: 1}, http.StatusNotFound, "product_not_found"},
		{"unknown variant", AddItemRequestDTO{ProductID: "1", Quantity: 1, Variant: "pink"}, http.StatusBadRequest, "invalid_variant"},
		{"unknown field", map[string]any{"product_id": "1", "qty": 1}, http.StatusBadRequest, "invalid_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, ts.do(t, ts.client, http.MethodPost, "/api/cart/items", tt.body, &e))
			assert.Equal(t, tt.code, e.Code)
		})
	}
}

func TestVisitorsAreIsolated(t *testing.T) {
	ts := newTestServer(t)
	other := newClient(t)

	var snap cart.Snapshot
	ts.do(t, ts.client, http.MethodPost, "/api/cart/items", AddItemRequestDTO{ProductID: "5", Quantity: 1}, &snap)
	require.Equal(t, 1, snap.Count)

	ts.do(t, other, http.MethodGet, "/api/cart", nil, &snap)
	assert.Equal(t, 0, snap.Count)
	assert.Equal(t, 2, ts.hub.Len())
}

func TestVisitorCookie(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/cart")
	require.NoError(t, err)
	resp.Body.Close()

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == common.VisitorCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Len(t, cookie.Value, 36)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: common.VisitorCookieName, Value: "../../etc"})
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Cookies(), "malformed visitor id replaced")
}

func TestSession_LoginProfileLogout(t *testing.T) {
	ts := newTestServer(t)
	var snap session.Snapshot
	var e ErrorResponse

	assert.Equal(t, http.StatusUnauthorized, ts.do(t, ts.client, http.MethodPost, "/api/session/login",
		LoginRequestDTO{Email: "user@example.com", Password: "nope"}, &e))
	assert.Equal(t, "invalid_credentials", e.Code)

	name := "Johnny"
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, ts.client, http.MethodPatch, "/api/session/profile",
		ProfileRequestDTO{Name: &name}, &e))

	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodPost, "/api/session/login",
		LoginRequestDTO{Email: "admin@example.com", Password: "admin"}, &snap))
	assert.True(t, snap.Authenticated)
	assert.True(t, snap.Identity.IsAdmin)

	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodPatch, "/api/session/profile",
		ProfileRequestDTO{Name: &name}, &snap))
	assert.Equal(t, "Johnny", snap.Identity.Name)

	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodGet, "/api/session", nil, &snap))
	assert.Equal(t, "Johnny", snap.Identity.Name)

	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodPost, "/api/session/logout", nil, &snap))
	assert.False(t, snap.Authenticated)
}

func TestSession_Register(t *testing.T) {
	ts := newTestServer(t)
	var snap session.Snapshot
	var e ErrorResponse

	assert.Equal(t, http.StatusConflict, ts.do(t, ts.client, http.MethodPost, "/api/session/register",
		RegisterRequestDTO{Name: "X", Email: "user@example.com", Password: "x"}, &e))

	require.Equal(t, http.StatusCreated, ts.do(t, ts.client, http.MethodPost, "/api/session/register",
		RegisterRequestDTO{Name: "Ann", Email: "ann@example.com", Password: "x"}, &snap))
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "ann@example.com", snap.Identity.Email)
}

func TestCheckout(t *testing.T) {
	ts := newTestServer(t)
	var e ErrorResponse

	assert.Equal(t, http.StatusUnauthorized, ts.do(t, ts.client, http.MethodPost, "/api/cart/checkout", nil, &e))

	ts.do(t, ts.client, http.MethodPost, "/api/session/login", LoginRequestDTO{Email: "user@example.com", Password: "password"}, nil)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, ts.client, http.MethodPost, "/api/cart/checkout", nil, &e))
	assert.Equal(t, "empty_cart", e.Code)

	var snap cart.Snapshot
	ts.do(t, ts.client, http.MethodPost, "/api/cart/items", AddItemRequestDTO{ProductID: "7", Quantity: 1}, &snap)

	var conflict CheckoutConflictDTO
	require.Equal(t, http.StatusConflict, ts.do(t, ts.client, http.MethodPost, "/api/cart/checkout", nil, &conflict))
	assert.Equal(t, "insufficient_stock", conflict.Code)
	require.Len(t, conflict.Shortfalls, 1)

	ts.do(t, ts.client, http.MethodDelete, "/api/cart", nil, &snap)
	ts.do(t, ts.client, http.MethodPost, "/api/cart/items", AddItemRequestDTO{ProductID: "8", Quantity: 2}, &snap)

	var receipt storefront.Receipt
	require.Equal(t, http.StatusCreated, ts.do(t, ts.client, http.MethodPost, "/api/cart/checkout", nil, &receipt))
	assert.Equal(t, 2, receipt.Count)
	assert.True(t, decimal.RequireFromString("379.80").Equal(receipt.Total))

	ts.do(t, ts.client, http.MethodGet, "/api/cart", nil, &snap)
	assert.Equal(t, 0, snap.Count)
}

func TestNotifications(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, ts.client, http.MethodPost, "/api/cart/items", AddItemRequestDTO{ProductID: "3", Quantity: 1, Variant: "mustard"}, nil)

	var list []notify.Notification
	require.Equal(t, http.StatusOK, ts.do(t, ts.client, http.MethodGet, "/api/notifications", nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, notify.KindSuccess, list[0].Kind)

	assert.Equal(t, http.StatusNoContent, ts.do(t, ts.client, http.MethodDelete, "/api/notifications/"+list[0].ID, nil, nil))
	var e ErrorResponse
	assert.Equal(t, http.StatusNotFound, ts.do(t, ts.client, http.MethodDelete, "/api/notifications/"+list[0].ID, nil, &e))

	ts.do(t, ts.client, http.MethodPost, "/api/session/login", LoginRequestDTO{Email: "x@example.com", Password: "x"}, nil)
	assert.Equal(t, http.StatusNoContent, ts.do(t, ts.client, http.MethodDelete, "/api/notifications", nil, nil))
	ts.do(t, ts.client, http.MethodGet, "/api/notifications", nil, &list)
	assert.Empty(t, list)
}

func TestHub_Sweep(t *testing.T) {
	sf, err := storefront.Open(context.Background(), storefront.Options{Backend: storefront.BackendMemory})
	require.NoError(t, err)
	hub := NewHub(sf)
	defer func() {
		hub.Close()
		_ = sf.Close()
	}()

	now := time.Now()
	hub.now = func() time.Time { return now }
	a := hub.Stores(context.Background(), "a")
	a.Cart.AddToCart(context.Background(), catalog.Seed()[0], 1, "")

	now = now.Add(time.Hour)
	hub.Stores(context.Background(), "b")

	assert.Equal(t, 1, hub.Sweep(30*time.Minute))
	assert.Equal(t, 1, hub.Len())

	rehydrated := hub.Stores(context.Background(), "a")
	assert.NotSame(t, a, rehydrated)
	assert.Equal(t, 1, rehydrated.Cart.Count())
}

func TestHub_HydrationDoesNotBlockOtherVisitors(t *testing.T) {
	sf, err := storefront.Open(context.Background(), storefront.Options{Backend: storefront.BackendMemory})
	require.NoError(t, err)
	hub := NewHub(sf)
	defer func() {
		hub.Close()
		_ = sf.Close()
	}()

	release := make(chan struct{})
	started := make(chan struct{})
	hub.load = func(ctx context.Context, id string) *storefront.Stores {
		if id == "slow" {
			close(started)
			<-release
		}
		return sf.Stores(ctx, id)
	}

	done := make(chan *storefront.Stores)
	go func() { done <- hub.Stores(context.Background(), "slow") }()
	<-started

	fast := make(chan struct{})
	go func() {
		hub.Stores(context.Background(), "fast")
		close(fast)
	}()
	select {
	case <-fast:
	case <-time.After(2 * time.Second):
		t.Fatal("hydrating one visitor blocked another")
	}

	close(release)
	assert.NotNil(t, <-done)
	assert.Equal(t, 2, hub.Len())
}

func TestHub_ConcurrentFirstUseSharesOneSet(t *testing.T) {
	sf, err := storefront.Open(context.Background(), storefront.Options{Backend: storefront.BackendMemory})
	require.NoError(t, err)
	hub := NewHub(sf)
	defer func() {
		hub.Close()
		_ = sf.Close()
	}()

	const n = 8
	got := make([]*storefront.Stores, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = hub.Stores(context.Background(), "v")
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
	assert.Equal(t, 1, hub.Len())
}
