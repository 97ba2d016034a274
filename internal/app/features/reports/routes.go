// internal/app/features/reports/routes.go
package reports

import (
	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /reports subrouter. Reading lists and details is
// public; submitting and completing require a session, deleting
// requires the admin role.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Route("/{collection}", func(cr chi.Router) {
		cr.Get("/", h.ServeList)
		cr.Get("/{id}", h.ServeDetail)

		cr.Group(func(pr chi.Router) {
			pr.Use(sm.RequireSignedIn)
			pr.Post("/", h.HandleCreate)
			pr.Post("/{id}/complete", h.HandleComplete)
		})

		cr.Group(func(ar chi.Router) {
			ar.Use(sm.RequireRole(models.RoleAdmin))
			ar.Delete("/{id}", h.HandleDelete)
		})
	})
	return r
}

// MountHistory registers GET /history on the root router; it sits
// outside /reports because it spans both collections.
func MountHistory(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.With(sm.RequireSignedIn).Get("/history", h.ServeHistory)
}
