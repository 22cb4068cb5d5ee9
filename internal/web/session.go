package web

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie names the cookie holding the browsing session id. Check
// state is stored per session.
const SessionCookie = "trailplan_session"

const sessionMaxAge = 365 * 24 * 60 * 60

type sessionKey struct{}

// withSession makes sure every request carries a session id, issuing a new
// cookie when the request has none or an invalid one.
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}
