package handlers

import (
	"net/http"

	"github.com/georgiajedi/catalog/internal/admin"
)

// HandleAdmin enables and reports admin mode. GET with ?admin=<password>
// starts a 60-minute session and sets the cookie; GET without reports
// the current state; DELETE logs out.
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if password := r.URL.Query().Get("admin"); password != "" {
			token, ok := h.admins.Enable(password)
			if !ok {
				h.writeError(w, "Invalid admin password", http.StatusForbidden)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     adminCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(admin.SessionDuration.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			h.writeJSON(w, map[string]any{"admin": true})
			return
		}
		h.writeJSON(w, map[string]any{"admin": h.isAdmin(r)})
	case http.MethodDelete:
		if c, err := r.Cookie(adminCookie); err == nil {
			h.admins.Logout(c.Value)
		}
		http.SetCookie(w, &http.Cookie{Name: adminCookie, Value: "", Path: "/", MaxAge: -1})
		h.writeJSON(w, map[string]any{"admin": false})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
