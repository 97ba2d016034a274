package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session value keys.
const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userEmailKey = "user_email"
	userRoleKey  = "user_role"
)

// ErrNotAuthenticated is returned when an operation requires a signed-in
// identity and none is present.
var ErrNotAuthenticated = errors.New("not authenticated")

// SessionUser is what we cache in the session / token and inject into
// r.Context(). It is the point-in-time identity read the rest of the
// system sees; there is no reactive propagation of session changes.
type SessionUser struct {
	ID    string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing the
// session middleware. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// UserFetcher loads fresh user data by id on each request so role changes
// and disabled accounts take effect immediately. Returning nil, nil means
// the user no longer exists (or may not sign in) and the request proceeds
// unauthenticated.
type UserFetcher interface {
	FetchByID(ctx context.Context, id string) (*SessionUser, error)
}

// SessionManager owns the cookie session store and the bearer-token
// manager. Mobile clients authenticate with an Authorization: Bearer
// token; browser clients get a cookie session. LoadSessionUser accepts
// either.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	tokens  *TokenManager
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager initializes the cookie store with the given signing
// key and cookie settings. In production (secure=true) cookies are
// Secure + SameSite=None; in local dev over http, Lax.
func NewSessionManager(sessionKey, name, domain string, secure bool, tokens *TokenManager, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		name:   name,
		tokens: tokens,
		log:    logger,
	}, nil
}

// Store exposes the underlying cookie store (logout needs its options).
func (sm *SessionManager) Store() *sessions.CookieStore {
	return sm.store
}

// GetSession returns the named session for the request.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SetUserFetcher installs the per-request user refresh. Optional; without
// it the identity cached in the session/token is trusted as-is.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) {
	sm.fetcher = f
}

// Establish records the user in a cookie session after a successful login.
func (sm *SessionManager) Establish(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		// A stale or corrupt cookie decodes to an error but still yields
		// a usable new session; only fail on anything else.
		if scErr, ok := err.(securecookie.Error); !ok || !scErr.IsDecode() {
			return err
		}
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userEmailKey] = u.Email
	sess.Values[userRoleKey] = u.Role
	return sess.Save(r, w)
}

// Clear expires the session cookie.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed during logout", zap.Error(err))
	}
	if opts := sm.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// IssueToken mints a bearer token for the user.
func (sm *SessionManager) IssueToken(u *SessionUser) (string, error) {
	return sm.tokens.Generate(u)
}

// LoadSessionUser injects the user into context if the request carries a
// valid bearer token or cookie session. It never rejects a request; the
// Require* middleware do that.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := sm.userFromBearer(r); u != nil {
			next.ServeHTTP(w, sm.refresh(r, u))
			return
		}
		if u := sm.userFromCookie(r); u != nil {
			next.ServeHTTP(w, sm.refresh(r, u))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (sm *SessionManager) userFromBearer(r *http.Request) *SessionUser {
	if sm.tokens == nil {
		return nil
	}
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}
	claims, err := sm.tokens.Validate(parts[1])
	if err != nil {
		return nil
	}
	return &SessionUser{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
}

func (sm *SessionManager) userFromCookie(r *http.Request) *SessionUser {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return nil
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return nil
	}
	return &SessionUser{
		ID:    getString(sess, userIDKey),
		Email: getString(sess, userEmailKey),
		Role:  getString(sess, userRoleKey),
	}
}

// refresh reloads the user through the fetcher (if any) so role changes
// and disabled accounts take effect without re-login.
func (sm *SessionManager) refresh(r *http.Request, u *SessionUser) *http.Request {
	if sm.fetcher == nil {
		return withUser(r, u)
	}
	fresh, err := sm.fetcher.FetchByID(r.Context(), u.ID)
	if err != nil {
		sm.log.Warn("session user refresh failed", zap.String("user_id", u.ID), zap.Error(err))
		return withUser(r, u)
	}
	if fresh == nil {
		return r // account gone or disabled
	}
	return withUser(r, fresh)
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser); otherwise 401 with a JSON error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
	})
}

// RequireRole ensures the signed-in user has one of the allowed roles.
// Not signed in → 401; signed in with the wrong role → 403.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
