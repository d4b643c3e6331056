package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.stores(r).Notices.List())
}

func (h *Handler) hideNotification(w http.ResponseWriter, r *http.Request) {
	if !h.stores(r).Notices.Hide(chi.URLParam(r, "id")) {
		h.respondError(w, r, http.StatusNotFound, "not_found", "no such notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearNotifications(w http.ResponseWriter, r *http.Request) {
	h.stores(r).Notices.Clear()
	w.WriteHeader(http.StatusNoContent)
}
