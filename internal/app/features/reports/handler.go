// internal/app/features/reports/handler.go
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/projectrefind/refind/internal/app/aggregate"
	apierrors "github.com/projectrefind/refind/internal/app/features/errors"
	"github.com/projectrefind/refind/internal/app/policy/reportpolicy"
	reportstore "github.com/projectrefind/refind/internal/app/store/reports"
	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/app/system/authz"
	"github.com/projectrefind/refind/internal/app/system/timeouts"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the lost/found report endpoints.
type Handler struct {
	Store reportstore.Store
	Agg   *aggregate.Aggregator
	Errs  *apierrors.Responder
	Log   *zap.Logger
}

// NewHandler constructs a reports Handler.
func NewHandler(store reportstore.Store, agg *aggregate.Aggregator, errs *apierrors.Responder, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Agg: agg, Errs: errs, Log: logger}
}

// collectionParam parses the {collection} URL segment.
func collectionParam(r *http.Request) (models.Collection, bool) {
	col := models.Collection(chi.URLParam(r, "collection"))
	return col, col.Valid()
}

// idParam parses the {id} URL segment.
func idParam(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// find scans the collection for a report by id. The store contract has
// no point lookup, listing is how every consumer reads reports.
func (h *Handler) find(ctx context.Context, col models.Collection, id primitive.ObjectID) (models.Report, error) {
	all, err := h.Store.ListAll(ctx, col)
	if err != nil {
		return models.Report{}, err
	}
	for _, rep := range all {
		if rep.ID == id {
			return rep, nil
		}
	}
	return models.Report{}, reportstore.ErrNotFound
}

// ServeList handles GET /reports/{collection}?q=...
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	col, ok := collectionParam(r)
	if !ok {
		h.Errs.BadRequest(w, r, "collection must be lost or found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Store.ListAll(ctx, col)
	if err != nil {
		h.Errs.Unavailable(w, r, err)
		return
	}
	all = aggregate.FilterByName(all, query.Get(r, "q"))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newReportViews(all))
}

// ServeDetail handles GET /reports/{collection}/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	col, ok := collectionParam(r)
	if !ok {
		h.Errs.BadRequest(w, r, "collection must be lost or found")
		return
	}
	id, ok := idParam(r)
	if !ok {
		h.Errs.BadRequest(w, r, "invalid report id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rep, err := h.find(ctx, col, id)
	switch {
	case err == nil:
	case errors.Is(err, reportstore.ErrNotFound):
		h.Errs.NotFound(w, r, "report not found")
		return
	default:
		h.Errs.Unavailable(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newDetailView(rep))
}

type createRequest struct {
	ItemName        string `json:"itemName"`
	ItemDescription string `json:"itemDescription"`
	Location        string `json:"location"`
	LocationLost    string `json:"locationLost"`
	LocationFound   string `json:"locationFound"`
	PhoneNumber     string `json:"phoneNumber"`
	ImageRef        string `json:"imageRef"`
}

// location picks the slot matching the collection; the generic field
// wins when both are present.
func (cr createRequest) location(col models.Collection) string {
	if cr.Location != "" {
		return cr.Location
	}
	if col == models.Found {
		return cr.LocationFound
	}
	return cr.LocationLost
}

// validate checks the required fields at the boundary; the store
// enforces the same rules as a backstop.
func (cr createRequest) validate(col models.Collection) string {
	switch {
	case strings.TrimSpace(cr.ItemName) == "":
		return "itemName is required"
	case strings.TrimSpace(cr.ItemDescription) == "":
		return "itemDescription is required"
	case strings.TrimSpace(cr.location(col)) == "":
		return "location is required"
	case strings.TrimSpace(cr.PhoneNumber) == "":
		return "phoneNumber is required"
	}
	return ""
}

// HandleCreate handles POST /reports/{collection}.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	col, ok := collectionParam(r)
	if !ok {
		h.Errs.BadRequest(w, r, "collection must be lost or found")
		return
	}

	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		h.Errs.BadRequest(w, r, "invalid request body")
		return
	}
	if msg := req.validate(col); msg != "" {
		h.Errs.BadRequest(w, r, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rep, err := h.Store.Create(ctx, col, reportstore.Fields{
		ItemName:        req.ItemName,
		ItemDescription: req.ItemDescription,
		Location:        req.location(col),
		PhoneNumber:     req.PhoneNumber,
		ImageRef:        req.ImageRef,
	}, authz.UserEmail(r))
	switch {
	case err == nil:
	case errors.Is(err, reportstore.ErrValidation):
		h.Errs.BadRequest(w, r, err.Error())
		return
	case errors.Is(err, auth.ErrNotAuthenticated):
		h.Errs.Unauthorized(w, r)
		return
	default:
		h.Errs.Unavailable(w, r, err)
		return
	}

	h.Log.Info("report created",
		zap.String("collection", string(col)),
		zap.String("report_id", rep.ID.Hex()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newReportView(rep))
}

// HandleComplete handles POST /reports/{collection}/{id}/complete.
// Owner only; marking an already-completed report again succeeds.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	col, ok := collectionParam(r)
	if !ok {
		h.Errs.BadRequest(w, r, "collection must be lost or found")
		return
	}
	id, ok := idParam(r)
	if !ok {
		h.Errs.BadRequest(w, r, "invalid report id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rep, err := h.find(ctx, col, id)
	switch {
	case err == nil:
	case errors.Is(err, reportstore.ErrNotFound):
		h.Errs.NotFound(w, r, "report not found")
		return
	default:
		h.Errs.Unavailable(w, r, err)
		return
	}

	if !reportpolicy.CanComplete(r, rep) {
		h.Errs.Forbidden(w, r)
		return
	}

	err = h.Store.SetCompleted(ctx, col, id)
	switch {
	case err == nil:
	case errors.Is(err, reportstore.ErrNotFound):
		// Deleted between the read and the write.
		h.Errs.NotFound(w, r, "report not found")
		return
	default:
		h.Errs.Unavailable(w, r, err)
		return
	}

	// Only now that the store confirmed does the response flip the flag.
	rep.IsCompleted = true

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newReportView(rep))
}

// HandleDelete handles DELETE /reports/{collection}/{id}. Admin only;
// deleting an id that is already gone succeeds.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	col, ok := collectionParam(r)
	if !ok {
		h.Errs.BadRequest(w, r, "collection must be lost or found")
		return
	}
	id, ok := idParam(r)
	if !ok {
		h.Errs.BadRequest(w, r, "invalid report id")
		return
	}

	if !reportpolicy.CanDelete(r) {
		h.Errs.Forbidden(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Store.Delete(ctx, col, id); err != nil {
		h.Errs.Unavailable(w, r, err)
		return
	}

	h.Log.Info("report deleted",
		zap.String("collection", string(col)),
		zap.String("report_id", id.Hex()))

	w.WriteHeader(http.StatusNoContent)
}

// ServeHistory handles GET /history: the signed-in user's reports
// across both collections, lost first.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	email := authz.UserEmail(r)
	if email == "" {
		h.Errs.Unauthorized(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	mine, err := h.Agg.History(ctx, email)
	if err != nil {
		h.Errs.Unavailable(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(newReportViews(mine))
}
