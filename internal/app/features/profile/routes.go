// internal/app/features/profile/routes.go
package profile

import (
	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the profile subrouter; every route requires a session.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.ServeProfile)
	r.Put("/", h.HandleUpdate)
	return r
}
