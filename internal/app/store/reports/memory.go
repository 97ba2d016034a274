// internal/app/store/reports/memory.go
package reportstore

import (
	"context"
	"sync"
	"time"

	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory Store with the same semantics as Mongo. It
// backs handler and aggregator tests, and keeps insertion order so
// listings are as stable as the Mongo sort.
type Memory struct {
	mu      sync.RWMutex
	byCol   map[models.Collection][]models.Report
	listErr map[models.Collection]error
}

// NewMemory returns an empty in-memory report store.
func NewMemory() *Memory {
	return &Memory{
		byCol:   map[models.Collection][]models.Report{},
		listErr: map[models.Collection]error{},
	}
}

// FailListWith makes subsequent list calls for col return err. Pass nil
// to clear. Test hook for exercising the fail-fast aggregation path.
func (s *Memory) FailListWith(col models.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.listErr, col)
		return
	}
	s.listErr[col] = err
}

// ListAll returns every report in the collection in insertion order.
func (s *Memory) ListAll(ctx context.Context, col models.Collection) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.listErr[col]; err != nil {
		return nil, err
	}
	out := make([]models.Report, len(s.byCol[col]))
	copy(out, s.byCol[col])
	return out, nil
}

// ListByOwner returns the reports whose owner matches exactly.
func (s *Memory) ListByOwner(ctx context.Context, col models.Collection, owner string) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.listErr[col]; err != nil {
		return nil, err
	}
	out := []models.Report{}
	for _, rep := range s.byCol[col] {
		if rep.OwnerEmail == owner {
			out = append(out, rep)
		}
	}
	return out, nil
}

// Create validates, sanitizes, and appends a new report.
func (s *Memory) Create(ctx context.Context, col models.Collection, f Fields, ownerEmail string) (models.Report, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCol[col] = append(s.byCol[col], rep)
	return rep, nil
}

// SetCompleted marks a report completed; idempotent; ErrNotFound when
// the id is absent from the collection.
func (s *Memory) SetCompleted(ctx context.Context, col models.Collection, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.byCol[col] {
		if s.byCol[col][i].ID == id {
			s.byCol[col][i].IsCompleted = true
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a report if present; absent ids are success.
func (s *Memory) Delete(ctx context.Context, col models.Collection, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reports := s.byCol[col]
	for i := range reports {
		if reports[i].ID == id {
			s.byCol[col] = append(reports[:i:i], reports[i+1:]...)
			return nil
		}
	}
	return nil
}
