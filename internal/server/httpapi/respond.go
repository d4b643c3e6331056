package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/furnistore/internal/catalog"
	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/dmitrijs2005/furnistore/internal/storefront"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error(r.Context(), "failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.respondJSON(w, r, status, ErrorResponse{Error: message, Code: code})
}

// handleError maps store and catalog errors to HTTP statuses.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		status, code = http.StatusNotFound, "product_not_found"
	case errors.Is(err, storefront.ErrUnknownVariant):
		status, code = http.StatusBadRequest, "invalid_variant"
	case errors.Is(err, storefront.ErrEmptyCart):
		status, code = http.StatusBadRequest, "empty_cart"
	case errors.Is(err, common.ErrorUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		status, code = http.StatusServiceUnavailable, "canceled"
	default:
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		h.respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	h.respondError(w, r, status, code, err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
