package metricsstore

import (
	"context"

	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals shown on the admin dashboard header.
type Counts struct {
	LostReports  int64
	FoundReports int64
	Completed    int64
	Users        int64
}

// FetchDashboardCounts returns the high-level counts for the admin
// dashboard. Intentionally tolerant: on error it returns 0 for that
// counter rather than failing the whole dashboard.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts

	if n, err := db.Collection(models.Lost.MongoName()).CountDocuments(ctx, bson.M{}); err == nil {
		out.LostReports = n
	}

	if n, err := db.Collection(models.Found.MongoName()).CountDocuments(ctx, bson.M{}); err == nil {
		out.FoundReports = n
	}

	completed := bson.M{"is_completed": true}
	for _, col := range []models.Collection{models.Lost, models.Found} {
		if n, err := db.Collection(col.MongoName()).CountDocuments(ctx, completed); err == nil {
			out.Completed += n
		}
	}

	if n, err := db.Collection("users").CountDocuments(ctx, bson.M{}); err == nil {
		out.Users = n
	}

	return out
}
