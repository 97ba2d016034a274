package logout_test

import (
	"net/http"
	"testing"

	"github.com/projectrefind/refind/internal/app/features/logout"
	"github.com/projectrefind/refind/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleLogout_ExpiresCookie(t *testing.T) {
	sm := testutil.NewSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	req := testutil.NewAuthenticatedRequest(t, "POST", "/logout", nil, testutil.RegularUser("budi@x.id"))
	rec := testutil.NewRecorder()

	h.HandleLogout(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNoContent)

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected an expiring session cookie")
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("cookie MaxAge: got %d, want -1", cookies[0].MaxAge)
	}
}

func TestHandleLogout_Anonymous(t *testing.T) {
	sm := testutil.NewSessionManager(t)
	h := logout.NewHandler(sm, zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/logout", nil)
	rec := testutil.NewRecorder()

	h.HandleLogout(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNoContent)
}
