// internal/app/features/register/handler.go
package register

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/projectrefind/refind/internal/app/features/errors"
	profilestore "github.com/projectrefind/refind/internal/app/store/profiles"
	userstore "github.com/projectrefind/refind/internal/app/store/users"
	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/app/system/normalize"
	"github.com/projectrefind/refind/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler creates accounts. Every account registers with the plain user
// role; when the registered email matches the configured admin email the
// account is promoted server-side, never from anything the client sent.
type Handler struct {
	Auth       *auth.PasswordAuthenticator
	Users      userstore.Store
	Profiles   profilestore.Store
	AdminEmail string
	Errs       *apierrors.Responder
	Log        *zap.Logger
}

// NewHandler constructs a register Handler.
func NewHandler(authn *auth.PasswordAuthenticator, users userstore.Store, profiles profilestore.Store, adminEmail string, errs *apierrors.Responder, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       authn,
		Users:      users,
		Profiles:   profiles,
		AdminEmail: adminEmail,
		Errs:       errs,
		Log:        logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nama     string `json:"nama"`
	NIM      string `json:"nim"`
}

type registerResponse struct {
	User    userBrief    `json:"user"`
	Profile profileBrief `json:"profile"`
}

type userBrief struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type profileBrief struct {
	Nama string `json:"nama"`
	NIM  string `json:"nim"`
}

// HandleRegister handles POST /register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		h.Errs.BadRequest(w, r, "invalid request body")
		return
	}

	email := normalize.Email(req.Email)
	nama := normalize.Name(req.Nama)
	nim := normalize.NIM(req.NIM)
	switch {
	case email == "" || !strings.Contains(email, "@"):
		h.Errs.BadRequest(w, r, "a valid email is required")
		return
	case nama == "":
		h.Errs.BadRequest(w, r, "nama is required")
		return
	case nim == "":
		h.Errs.BadRequest(w, r, "nim is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Auth.Register(ctx, email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrWeakPassword):
		h.Errs.BadRequest(w, r, err.Error())
		return
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, userstore.ErrDuplicateEmail):
		h.Errs.Conflict(w, r, "email already registered")
		return
	default:
		h.Errs.Unavailable(w, r, err)
		return
	}

	// The configured admin account gets its role claim here; everyone
	// else stays a plain user.
	if h.AdminEmail != "" && email == normalize.Email(h.AdminEmail) {
		if err := h.Users.EnsureAdmin(ctx, email); err != nil {
			h.Log.Warn("admin promotion failed at registration", zap.Error(err))
		} else if fresh, err := h.Users.GetByID(ctx, u.ID); err == nil {
			u = *fresh
		}
	}

	p, err := h.Profiles.Upsert(ctx, u.ID, nama, nim)
	if err != nil {
		h.Errs.Unavailable(w, r, err)
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(registerResponse{
		User:    userBrief{ID: u.ID.Hex(), Email: u.Email, Role: u.Role},
		Profile: profileBrief{Nama: p.Nama, NIM: p.NIM},
	})
}
