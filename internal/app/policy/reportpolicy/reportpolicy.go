// Package reportpolicy provides authorization policies for report
// mutations.
//
// Authorization rules:
//   - Anyone signed in can submit a report and read the public lists
//   - Only the report's owner can mark it completed
//   - Only admins can delete reports or view the combined dashboard
package reportpolicy

import (
	"net/http"

	"github.com/projectrefind/refind/internal/app/system/authz"
	"github.com/projectrefind/refind/internal/domain/models"
)

// CanComplete reports whether the current user may mark the report
// completed. Ownership is an exact email match; admins get no special
// treatment here, deletion is their tool.
func CanComplete(r *http.Request, rep models.Report) bool {
	_, email, _, ok := authz.UserCtx(r)
	if !ok || email == "" {
		return false
	}
	return email == rep.OwnerEmail
}

// CanDelete reports whether the current user may delete reports.
func CanDelete(r *http.Request) bool {
	return authz.IsAdmin(r)
}

// CanViewCombined reports whether the current user may see the
// combined cross-collection dashboard.
func CanViewCombined(r *http.Request) bool {
	return authz.IsAdmin(r)
}
