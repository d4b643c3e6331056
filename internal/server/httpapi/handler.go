// Package httpapi exposes the per-visitor stores over a JSON HTTP API. A
// visitor is identified by the furnistore_visitor cookie.
package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/dmitrijs2005/furnistore/internal/storefront"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Options struct {
	RequestTimeout time.Duration
	CookieMaxAge   time.Duration
	CookieSecure   bool
}

type Handler struct {
	sf   *storefront.Storefront
	hub  *Hub
	log  logging.Logger
	opts Options
}

func NewHandler(sf *storefront.Storefront, hub *Hub, log logging.Logger, opts Options) *Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if opts.CookieMaxAge <= 0 {
		opts.CookieMaxAge = 30 * 24 * time.Hour
	}
	return &Handler{sf: sf, hub: hub, log: log, opts: opts}
}

// Routes builds the router, wrapped in OpenTelemetry instrumentation.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(h.opts.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		h.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(h.visitorMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.getCart)
				r.Delete("/", h.clearCart)
				r.Post("/items", h.addItem)
				r.Patch("/items/{lineID}", h.updateQuantity)
				r.Delete("/items/{lineID}", h.removeItem)
				r.Post("/checkout", h.checkout)
			})

			r.Route("/session", func(r chi.Router) {
				r.Get("/", h.getSession)
				r.Post("/login", h.login)
				r.Post("/register", h.register)
				r.Post("/logout", h.logout)
				r.Patch("/profile", h.updateProfile)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.listNotifications)
				r.Delete("/", h.clearNotifications)
				r.Delete("/{id}", h.hideNotification)
			})
		})
	})

	return otelhttp.NewHandler(r, "furnistore-api")
}

func (h *Handler) stores(r *http.Request) *storefront.Stores {
	return h.hub.Stores(r.Context(), visitorID(r.Context()))
}
