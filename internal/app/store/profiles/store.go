// Package profilestore persists the per-user profile record (nama and
// NIM) shown on the profile screen. One document per user, keyed by the
// owning user's id.
package profilestore

import (
	"context"
	"errors"

	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when the user has no profile record yet.
	ErrNotFound = errors.New("profile not found")
	// ErrValidation is returned when a profile write is missing required fields.
	ErrValidation = errors.New("invalid profile")
)

// Store is the profile repository.
type Store interface {
	// Get loads the profile for a user.
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)

	// Upsert writes the profile for a user, creating it on first write.
	Upsert(ctx context.Context, userID primitive.ObjectID, nama, nim string) (models.Profile, error)
}
