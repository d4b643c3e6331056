package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/furnistore/internal/common"
	"github.com/google/uuid"
)

type ctxKey int

const visitorKey ctxKey = iota

// visitorMiddleware makes sure every request carries a visitor id. A
// missing or malformed cookie gets a fresh id; the cookie is (re)issued.
func (h *Handler) visitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(common.VisitorCookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     common.VisitorCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(h.opts.CookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   h.opts.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), visitorKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func visitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey).(string)
	return id
}
