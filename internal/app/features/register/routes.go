// internal/app/features/register/routes.go
package register

import "github.com/go-chi/chi/v5"

// MountRoutes registers POST /register on the supplied router.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/register", h.HandleRegister)
}
