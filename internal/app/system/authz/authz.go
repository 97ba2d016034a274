// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/projectrefind/refind/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), email, Mongo ObjectID, and
// a found flag. If no user is present in context or the user ID is
// malformed, it returns "visitor", "", NilObjectID, false. Callers can
// trust that ok=true means a valid, authenticated user with a valid
// ObjectID.
func UserCtx(r *http.Request) (role string, email string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Email, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// UserEmail returns the signed-in user's email, or "" if not signed in.
func UserEmail(r *http.Request) string {
	_, email, _, ok := UserCtx(r)
	if !ok {
		return ""
	}
	return email
}

// HasAnyRole reports whether the current request's user has any of the
// given roles. Returns false if no user is present.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
