// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/projectrefind/refind/internal/app/features/errors"
	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/app/system/ratelimit"
	"github.com/projectrefind/refind/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler signs users in. Both surfaces are served from one endpoint:
// the response carries a bearer token for the mobile client and the
// Set-Cookie session for browsers.
type Handler struct {
	Auth       *auth.PasswordAuthenticator
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Errs       *apierrors.Responder
	Log        *zap.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(authn *auth.PasswordAuthenticator, sm *auth.SessionManager, limiter *ratelimit.LoginLimiter, errs *apierrors.Responder, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       authn,
		SessionMgr: sm,
		Limiter:    limiter,
		Errs:       errs,
		Log:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  userBrief `json:"user"`
}

type userBrief struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		h.Errs.BadRequest(w, r, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.Errs.BadRequest(w, r, "email and password are required")
		return
	}
	if allowed, reason := h.Limiter.Check(r, req.Email); !allowed {
		h.Errs.TooManyRequests(w, r, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.Log.Info("login rejected", zap.String("email", req.Email))
		h.Errs.Unauthorized(w, r)
		return
	case errors.Is(err, auth.ErrUserDisabled):
		h.Errs.Forbidden(w, r)
		return
	default:
		h.Errs.Unavailable(w, r, err)
		return
	}

	su := &auth.SessionUser{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Role:  u.Role,
	}
	if err := h.SessionMgr.Establish(w, r, su); err != nil {
		h.Errs.Internal(w, r, err)
		return
	}
	token, err := h.SessionMgr.IssueToken(su)
	if err != nil {
		h.Errs.Internal(w, r, err)
		return
	}
	h.Limiter.ResetEmail(req.Email)

	h.Log.Info("user signed in",
		zap.String("user_id", su.ID),
		zap.String("role", su.Role))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{
		Token: token,
		User:  userBrief{ID: su.ID, Email: su.Email, Role: su.Role},
	})
}
