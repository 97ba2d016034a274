package userstore

import (
	"context"
	"sync"
	"time"

	"github.com/projectrefind/refind/internal/app/system/normalize"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory user store for tests. Same semantics as Mongo,
// including the unique email constraint.
type Memory struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]models.User
	byEmail map[string]primitive.ObjectID // keyed by folded email
}

// NewMemory creates an empty in-memory user store.
func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[primitive.ObjectID]models.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

// Create inserts a new user, enforcing email uniqueness.
func (s *Memory) Create(ctx context.Context, u models.User) (models.User, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[u.EmailCI]; exists {
		return models.User{}, ErrDuplicateEmail
	}
	s.byID[u.ID] = u
	s.byEmail[u.EmailCI] = u.ID
	return u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Memory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[text.Fold(normalize.Email(email))]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}

// GetByID loads a user by ObjectID.
func (s *Memory) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// EnsureAdmin promotes the account with this email to admin, if present.
func (s *Memory) EnsureAdmin(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[text.Fold(normalize.Email(email))]
	if !ok {
		return nil
	}
	u := s.byID[id]
	if u.Role != models.RoleAdmin {
		u.Role = models.RoleAdmin
		u.UpdatedAt = time.Now().UTC()
		s.byID[id] = u
	}
	return nil
}

// SetStatus flips an account's status. Test helper for exercising the
// disabled-account paths.
func (s *Memory) SetStatus(id primitive.ObjectID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		u.Status = status
		s.byID[id] = u
	}
}
