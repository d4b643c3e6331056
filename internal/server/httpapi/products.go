package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}
	if v := q.Get("in_stock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "invalid_request", "in_stock must be a boolean")
			return
		}
		f.InStock = inStock
	}

	products, err := h.sf.Catalog.List(r.Context(), f)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.sf.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, p)
}
