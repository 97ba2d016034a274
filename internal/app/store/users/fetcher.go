package userstore

import (
	"context"
	"errors"

	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/app/system/timeouts"
	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fetcher implements auth.UserFetcher so the session middleware reloads
// the role claim and status from the store on each request. Role changes
// and disabled accounts take effect without re-login.
type Fetcher struct {
	users Store
}

// NewFetcher creates a UserFetcher over the given user store.
func NewFetcher(users Store) *Fetcher {
	return &Fetcher{users: users}
}

// FetchByID retrieves a user by ID. A missing or disabled account yields
// nil, nil so the request proceeds unauthenticated; a store failure is
// returned so the middleware can fall back to the cached identity.
func (f *Fetcher) FetchByID(ctx context.Context, userID string) (*auth.SessionUser, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	u, err := f.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if u.Status == models.StatusDisabled {
		return nil, nil
	}
	return &auth.SessionUser{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Role:  u.Role,
	}, nil
}
