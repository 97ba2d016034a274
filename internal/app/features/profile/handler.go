// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/projectrefind/refind/internal/app/features/errors"
	profilestore "github.com/projectrefind/refind/internal/app/store/profiles"
	"github.com/projectrefind/refind/internal/app/system/authz"
	"github.com/projectrefind/refind/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's profile record (nama and NIM).
type Handler struct {
	Profiles profilestore.Store
	Errs     *apierrors.Responder
	Log      *zap.Logger
}

// NewHandler constructs a profile Handler.
func NewHandler(profiles profilestore.Store, errs *apierrors.Responder, logger *zap.Logger) *Handler {
	return &Handler{Profiles: profiles, Errs: errs, Log: logger}
}

type profileResponse struct {
	Nama string `json:"nama"`
	NIM  string `json:"nim"`
}

// ServeProfile handles GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		h.Errs.Unauthorized(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Profiles.Get(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, profilestore.ErrNotFound):
		h.Errs.NotFound(w, r, "profile not found")
		return
	default:
		h.Errs.Unavailable(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profileResponse{Nama: p.Nama, NIM: p.NIM})
}

// HandleUpdate handles PUT /profile.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		h.Errs.Unauthorized(w, r)
		return
	}

	var req profileResponse
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		h.Errs.BadRequest(w, r, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Profiles.Upsert(ctx, userID, req.Nama, req.NIM)
	switch {
	case err == nil:
	case errors.Is(err, profilestore.ErrValidation):
		h.Errs.BadRequest(w, r, err.Error())
		return
	default:
		h.Errs.Unavailable(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profileResponse{Nama: p.Nama, NIM: p.NIM})
}
