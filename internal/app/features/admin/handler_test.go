package admin_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/projectrefind/refind/internal/app/aggregate"
	"github.com/projectrefind/refind/internal/app/features/admin"
	apierrors "github.com/projectrefind/refind/internal/app/features/errors"
	metricsstore "github.com/projectrefind/refind/internal/app/store/metrics"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/projectrefind/refind/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, counts admin.CountsFetcher) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	fx := testutil.NewFixtures(t)
	agg := aggregate.New(fx.Reports, zap.NewNop())
	h := admin.NewHandler(agg, counts, apierrors.NewResponder(zap.NewNop()), zap.NewNop())

	root := chi.NewRouter()
	root.Mount("/admin", admin.Routes(h, testutil.NewSessionManager(t)))
	return root, fx
}

type dashboardBody struct {
	Counts struct {
		LostReports  int64 `json:"lostReports"`
		FoundReports int64 `json:"foundReports"`
		Completed    int64 `json:"completed"`
		Users        int64 `json:"users"`
	} `json:"counts"`
	Reports []struct {
		ItemName    string `json:"itemName"`
		OwnerEmail  string `json:"ownerEmail"`
		Collection  string `json:"collection"`
		IsCompleted bool   `json:"isCompleted"`
	} `json:"reports"`
}

func TestServeReports(t *testing.T) {
	counts := func(context.Context) metricsstore.Counts {
		return metricsstore.Counts{LostReports: 2, FoundReports: 1, Completed: 1, Users: 5}
	}
	router, fx := newRouter(t, counts)
	ctx := context.Background()

	fx.CreateReport(ctx, models.Found, "Botol", "b@x.id")
	fx.CreateReport(ctx, models.Lost, "Dompet", "a@x.id")
	fx.CreateReport(ctx, models.Lost, "Kunci", "b@x.id")

	req := testutil.NewAuthenticatedRequest(t, "GET", "/admin/reports", nil, testutil.AdminUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got dashboardBody
	rec.DecodeJSON(t, &got)
	if len(got.Reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(got.Reports))
	}
	// Lost reports come before found regardless of creation order.
	if got.Reports[0].Collection != "lost" || got.Reports[2].Collection != "found" {
		t.Errorf("collection order: %q, %q, %q",
			got.Reports[0].Collection, got.Reports[1].Collection, got.Reports[2].Collection)
	}
	if got.Counts.Users != 5 || got.Counts.LostReports != 2 {
		t.Errorf("counts: %+v", got.Counts)
	}
}

func TestServeReports_Filter(t *testing.T) {
	router, fx := newRouter(t, nil)
	ctx := context.Background()

	fx.CreateReport(ctx, models.Lost, "Dompet Coklat", "a@x.id")
	fx.CreateReport(ctx, models.Found, "Dompet Hitam", "b@x.id")
	fx.CreateReport(ctx, models.Found, "Kunci", "b@x.id")

	req := testutil.NewAuthenticatedRequest(t, "GET", "/admin/reports?q=dompet", nil, testutil.AdminUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got dashboardBody
	rec.DecodeJSON(t, &got)
	if len(got.Reports) != 2 {
		t.Fatalf("filtered: got %d reports, want 2", len(got.Reports))
	}
	for _, r := range got.Reports {
		if r.ItemName != "Dompet Coklat" && r.ItemName != "Dompet Hitam" {
			t.Errorf("unexpected report %q in filtered view", r.ItemName)
		}
	}
}

func TestServeReports_NilCounts(t *testing.T) {
	router, fx := newRouter(t, nil)
	fx.CreateReport(context.Background(), models.Lost, "Dompet", "a@x.id")

	req := testutil.NewAuthenticatedRequest(t, "GET", "/admin/reports", nil, testutil.AdminUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got dashboardBody
	rec.DecodeJSON(t, &got)
	if got.Counts.LostReports != 0 || got.Counts.Users != 0 {
		t.Errorf("counts without a fetcher: %+v", got.Counts)
	}
}

func TestServeReports_Authz(t *testing.T) {
	router, _ := newRouter(t, nil)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/admin/reports", nil, testutil.RegularUser("a@x.id"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	anon := testutil.NewJSONRequest(t, "GET", "/admin/reports", nil)
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, anon)
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestServeReports_StoreDown(t *testing.T) {
	router, fx := newRouter(t, nil)
	fx.Reports.FailListWith(models.Lost, context.DeadlineExceeded)

	req := testutil.NewAuthenticatedRequest(t, "GET", "/admin/reports", nil, testutil.AdminUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusServiceUnavailable)
}
