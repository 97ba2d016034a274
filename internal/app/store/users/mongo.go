package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/projectrefind/refind/internal/app/system/normalize"
	"github.com/projectrefind/refind/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo is the MongoDB-backed user store.
type Mongo struct {
	c *mongo.Collection
}

// NewMongo creates a user store over the "users" collection.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection("users")}
}

// Create inserts a new user after normalizing & validating fields.
func (s *Mongo) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}

	switch u.Role {
	case models.RoleUser, models.RoleAdmin:
	default:
		return models.User{}, errBadRole
	}
	switch u.Status {
	case models.StatusActive, models.StatusDisabled:
	default:
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

var (
	errBadRole   = errors.New(`role must be "user"|"admin"`)
	errBadStatus = errors.New(`status must be "active"|"disabled"`)
)

// GetByEmail looks up a user by case-insensitive email.
func (s *Mongo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID.
func (s *Mongo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// EnsureAdmin promotes the account with this email to admin. No-op when
// the account does not exist yet or is already an admin.
func (s *Mongo) EnsureAdmin(ctx context.Context, email string) error {
	filter := bson.M{
		"email_ci": text.Fold(normalize.Email(email)),
		"role":     bson.M{"$ne": models.RoleAdmin},
	}
	set := bson.M{"$set": bson.M{
		"role":       models.RoleAdmin,
		"updated_at": time.Now().UTC(),
	}}
	_, err := s.c.UpdateOne(ctx, filter, set)
	return err
}
