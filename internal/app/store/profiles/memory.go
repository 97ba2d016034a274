package profilestore

import (
	"context"
	"sync"
	"time"

	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory profile store for tests.
type Memory struct {
	mu     sync.RWMutex
	byUser map[primitive.ObjectID]models.Profile
}

// NewMemory creates an empty in-memory profile store.
func NewMemory() *Memory {
	return &Memory{byUser: make(map[primitive.ObjectID]models.Profile)}
}

// Get loads the profile for a user.
func (s *Memory) Get(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Upsert writes the profile for a user, creating it on first write.
func (s *Memory) Upsert(ctx context.Context, userID primitive.ObjectID, nama, nim string) (models.Profile, error) {
	nama, nim, err := cleanProfile(nama, nim)
	if err != nil {
		return models.Profile{}, err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byUser[userID]
	if !ok {
		p = models.Profile{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			CreatedAt: now,
		}
	}
	p.Nama = nama
	p.NIM = nim
	p.UpdatedAt = now
	s.byUser[userID] = p
	return p, nil
}
