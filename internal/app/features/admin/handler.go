package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/projectrefind/refind/internal/app/aggregate"
	apierrors "github.com/projectrefind/refind/internal/app/features/errors"
	metricsstore "github.com/projectrefind/refind/internal/app/store/metrics"
	"github.com/projectrefind/refind/internal/app/system/timeouts"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CountsFetcher supplies the dashboard header totals. A nil fetcher is
// allowed and yields zero counts.
type CountsFetcher func(ctx context.Context) metricsstore.Counts

// MongoCounts builds a CountsFetcher over the live database.
func MongoCounts(db *mongo.Database) CountsFetcher {
	return func(ctx context.Context) metricsstore.Counts {
		return metricsstore.FetchDashboardCounts(ctx, db)
	}
}

// Handler serves the admin review surface: every report across both
// collections in one list, with the same name filter users get.
type Handler struct {
	agg    *aggregate.Aggregator
	counts CountsFetcher
	errs   *apierrors.Responder
	log    *zap.Logger
}

func NewHandler(agg *aggregate.Aggregator, counts CountsFetcher, errs *apierrors.Responder, logger *zap.Logger) *Handler {
	return &Handler{agg: agg, counts: counts, errs: errs, log: logger}
}

type countsView struct {
	LostReports  int64 `json:"lostReports"`
	FoundReports int64 `json:"foundReports"`
	Completed    int64 `json:"completed"`
	Users        int64 `json:"users"`
}

type adminReportView struct {
	ID              string    `json:"id"`
	ItemName        string    `json:"itemName"`
	ItemDescription string    `json:"itemDescription"`
	Location        string    `json:"location"`
	PhoneNumber     string    `json:"phoneNumber"`
	OwnerEmail      string    `json:"ownerEmail"`
	IsCompleted     bool      `json:"isCompleted"`
	Collection      string    `json:"collection"`
	CreatedAt       time.Time `json:"createdAt"`
}

type dashboardResponse struct {
	Counts  countsView        `json:"counts"`
	Reports []adminReportView `json:"reports"`
}

func newAdminReportView(rep models.Report) adminReportView {
	return adminReportView{
		ID:              rep.ID.Hex(),
		ItemName:        rep.ItemName,
		ItemDescription: rep.ItemDescription,
		Location:        rep.Location,
		PhoneNumber:     rep.PhoneNumber,
		OwnerEmail:      rep.OwnerEmail,
		IsCompleted:     rep.IsCompleted,
		Collection:      string(rep.Collection),
		CreatedAt:       rep.CreatedAt,
	}
}

// ServeReports handles GET /admin/reports. Lost reports are listed before
// found reports, and ?q= narrows both by item name.
func (h *Handler) ServeReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.agg.CombinedView(ctx, query.Get(r, "q"), "")
	if err != nil {
		h.errs.Unavailable(w, r, err)
		return
	}

	resp := dashboardResponse{Reports: make([]adminReportView, 0, len(all))}
	for _, rep := range all {
		resp.Reports = append(resp.Reports, newAdminReportView(rep))
	}
	if h.counts != nil {
		c := h.counts(ctx)
		resp.Counts = countsView{
			LostReports:  c.LostReports,
			FoundReports: c.FoundReports,
			Completed:    c.Completed,
			Users:        c.Users,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("failed to encode admin dashboard", zap.Error(err))
	}
}
