package profilestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/projectrefind/refind/internal/app/system/normalize"
	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is the MongoDB-backed profile store.
type Mongo struct {
	c *mongo.Collection
}

// NewMongo creates a profile store over the "profiles" collection.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection("profiles")}
}

// Get loads the profile for a user.
func (s *Mongo) Get(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert writes the profile for a user, creating it on first write.
func (s *Mongo) Upsert(ctx context.Context, userID primitive.ObjectID, nama, nim string) (models.Profile, error) {
	nama, nim, err := cleanProfile(nama, nim)
	if err != nil {
		return models.Profile{}, err
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"nama":       nama,
			"nim":        nim,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var p models.Profile
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func cleanProfile(nama, nim string) (string, string, error) {
	nama = normalize.Name(nama)
	nim = normalize.NIM(nim)
	if nama == "" {
		return "", "", fmt.Errorf("nama is required: %w", ErrValidation)
	}
	if nim == "" {
		return "", "", fmt.Errorf("nim is required: %w", ErrValidation)
	}
	return nama, nim, nil
}
