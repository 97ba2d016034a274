// Package userstore persists user accounts. Accounts carry the role
// claim the rest of the system trusts; nothing outside this package and
// the bootstrap admin seeding ever writes a role.
package userstore

import (
	"context"
	"errors"

	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
)

// Store is the user account repository. Mongo backs it in production;
// Memory backs it in tests.
type Store interface {
	// Create inserts a new account after normalizing fields. Role and
	// status default to user/active when unset.
	Create(ctx context.Context, u models.User) (models.User, error)

	// GetByEmail looks up an account by case-insensitive email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID loads an account by ObjectID.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// EnsureAdmin promotes the account with the given email to the admin
	// role. A missing account is not an error; promotion happens when the
	// account appears.
	EnsureAdmin(ctx context.Context, email string) error
}
