// internal/app/features/userinfo/handler.go
package userinfo

import (
	"encoding/json"
	"net/http"

	"github.com/projectrefind/refind/internal/app/system/auth"
)

// Handler serves user information for authenticated sessions.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ServeUserInfo returns JSON with the current user's authentication status and identity.
//
// Response format:
//
//	{ "isAuthenticated": bool, "id": "...", "email": "...", "role": "..." }
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isAuthenticated": false,
			"id":              "",
			"email":           "",
			"role":            "",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"isAuthenticated": true,
		"id":              user.ID,
		"email":           user.Email,
		"role":            user.Role,
	})
}
