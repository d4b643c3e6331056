package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/furnistore/internal/cart"
	"github.com/dmitrijs2005/furnistore/internal/storefront"
	"github.com/go-chi/chi/v5"
)

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CheckoutConflictDTO struct {
	ErrorResponse
	Shortfalls []cart.Shortfall `json:"shortfalls"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.stores(r).Cart.Snapshot())
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		h.respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	s := h.stores(r)
	ok, err := s.AddProduct(r.Context(), req.ProductID, req.Quantity, req.Variant)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}
	h.respondJSON(w, r, http.StatusCreated, s.Cart.Snapshot())
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		h.respondError(w, r, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	s := h.stores(r)
	if !s.Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "lineID"), req.Quantity) {
		h.respondError(w, r, http.StatusNotFound, "line_not_found", "no such cart line")
		return
	}
	h.respondJSON(w, r, http.StatusOK, s.Cart.Snapshot())
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	s := h.stores(r)
	if !s.Cart.RemoveFromCart(r.Context(), chi.URLParam(r, "lineID")) {
		h.respondError(w, r, http.StatusNotFound, "line_not_found", "no such cart line")
		return
	}
	h.respondJSON(w, r, http.StatusOK, s.Cart.Snapshot())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	s := h.stores(r)
	s.Cart.ClearCart(r.Context())
	h.respondJSON(w, r, http.StatusOK, s.Cart.Snapshot())
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	receipt, short, err := h.stores(r).Checkout(r.Context())
	if errors.Is(err, storefront.ErrInsufficientStock) {
		h.respondJSON(w, r, http.StatusConflict, CheckoutConflictDTO{
			ErrorResponse: ErrorResponse{Error: err.Error(), Code: "insufficient_stock"},
			Shortfalls:    short,
		})
		return
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, receipt)
}
