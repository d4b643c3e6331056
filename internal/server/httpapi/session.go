package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/furnistore/internal/session"
)

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type ProfileRequestDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, h.stores(r).Session.Snapshot())
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s := h.stores(r)
	ok, err := s.Login(r.Context(), session.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		h.log.Warn(r.Context(), "login backend failed", "error", err)
		h.respondError(w, r, http.StatusServiceUnavailable, "service_unavailable", "authentication backend unavailable")
		return
	}
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}
	h.respondJSON(w, r, http.StatusOK, s.Session.Snapshot())
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s := h.stores(r)
	ok, err := s.Register(r.Context(), session.Registration{
		Name: req.Name, Email: req.Email, Password: req.Password, Phone: req.Phone,
	})
	if err != nil {
		h.log.Warn(r.Context(), "register backend failed", "error", err)
		h.respondError(w, r, http.StatusServiceUnavailable, "service_unavailable", "authentication backend unavailable")
		return
	}
	if !ok {
		h.respondError(w, r, http.StatusConflict, "registration_rejected", "email already registered or form incomplete")
		return
	}
	h.respondJSON(w, r, http.StatusCreated, s.Session.Snapshot())
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	s := h.stores(r)
	s.Session.Logout(r.Context())
	h.respondJSON(w, r, http.StatusOK, s.Session.Snapshot())
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s := h.stores(r)
	if !s.Session.UpdateProfile(r.Context(), session.ProfilePatch{Name: req.Name, Email: req.Email, Phone: req.Phone}) {
		h.respondError(w, r, http.StatusUnauthorized, "unauthorized", "sign in first")
		return
	}
	h.respondJSON(w, r, http.StatusOK, s.Session.Snapshot())
}
