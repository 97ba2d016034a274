// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/projectrefind/refind/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler clears the cookie session. Bearer tokens are not revoked;
// they simply expire.
type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler constructs a logout Handler.
func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sm, Log: logger}
}

// HandleLogout handles POST /logout. Always succeeds; logging out an
// already-anonymous client is a no-op.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("user_id", u.ID))
	}
	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Warn("failed to clear session", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
