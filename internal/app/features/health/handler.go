package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/projectrefind/refind/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is the slice of *mongo.Client the health check needs.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB  Pinger
	Log *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client and logger.
func NewHandler(db Pinger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	if err := h.DB.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:   "error",
			Database: "disconnected",
			Message:  "Database unavailable",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:   "ok",
		Database: "connected",
	})
}
