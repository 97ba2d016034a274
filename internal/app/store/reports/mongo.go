// internal/app/store/reports/mongo.go
package reportstore

import (
	"context"
	"fmt"
	"time"

	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the production Store over the two report collections.
type Mongo struct {
	db *mongo.Database
}

// NewMongo returns a Mongo-backed report store.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (s *Mongo) coll(col models.Collection) *mongo.Collection {
	return s.db.Collection(col.MongoName())
}

// ListAll fetches every report in the collection, oldest first.
func (s *Mongo) ListAll(ctx context.Context, col models.Collection) ([]models.Report, error) {
	return s.find(ctx, col, bson.M{})
}

// ListByOwner fetches the owner-scoped history slice of one collection.
// The match is exact and case-sensitive: owner_email is written from the
// session verbatim and queried the same way.
func (s *Mongo) ListByOwner(ctx context.Context, col models.Collection, owner string) ([]models.Report, error) {
	return s.find(ctx, col, bson.M{"owner_email": owner})
}

func (s *Mongo) find(ctx context.Context, col models.Collection, filter bson.M) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll(col).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s reports: %w", col, err)
	}
	defer cur.Close(ctx)

	reports := []models.Report{}
	if err := cur.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode %s reports: %w", col, err)
	}
	for i := range reports {
		reports[i].Collection = col
	}
	return reports, nil
}

// Create validates, sanitizes, and inserts a new report.
func (s *Mongo) Create(ctx context.Context, col models.Collection, f Fields, ownerEmail string) (models.Report, error) {
	if ownerEmail == "" {
		return models.Report{}, auth.ErrNotAuthenticated
	}
	f, err := cleanFields(f)
	if err != nil {
		return models.Report{}, err
	}

	rep := models.Report{
		ID:              primitive.NewObjectID(),
		ItemName:        f.ItemName,
		ItemNameCI:      text.Fold(f.ItemName),
		ItemDescription: f.ItemDescription,
		Location:        f.Location,
		PhoneNumber:     f.PhoneNumber,
		ImageRef:        f.ImageRef,
		OwnerEmail:      ownerEmail,
		IsCompleted:     false,
		Collection:      col,
		CreatedAt:       time.Now().UTC(),
	}

	if _, err := s.coll(col).InsertOne(ctx, rep); err != nil {
		return models.Report{}, fmt.Errorf("insert %s report: %w", col, err)
	}
	return rep, nil
}

// SetCompleted marks a report completed. The write is unconditional on
// is_completed, so re-completing matches the document and succeeds with
// no change.
func (s *Mongo) SetCompleted(ctx context.Context, col models.Collection, id primitive.ObjectID) error {
	res, err := s.coll(col).UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_completed": true}})
	if err != nil {
		return fmt.Errorf("complete %s report: %w", col, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a report by id. No existence check: deleting an absent
// id is treated as success.
func (s *Mongo) Delete(ctx context.Context, col models.Collection, id primitive.ObjectID) error {
	if _, err := s.coll(col).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete %s report: %w", col, err)
	}
	return nil
}
