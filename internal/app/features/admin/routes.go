package admin

import (
	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the admin subrouter. Every route requires the admin role.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole(models.RoleAdmin))
	r.Get("/reports", h.ServeReports)
	return r
}
