package profilestore_test

import (
	"context"
	"errors"
	"testing"

	profilestore "github.com/projectrefind/refind/internal/app/store/profiles"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsert_CreateThenUpdate(t *testing.T) {
	store := profilestore.NewMemory()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	created, err := store.Upsert(ctx, userID, "  Budi Santoso ", "212410102002")
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if created.Nama != "Budi Santoso" {
		t.Errorf("nama: got %q", created.Nama)
	}
	if created.NIM != "212410102002" {
		t.Errorf("nim: got %q", created.NIM)
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	updated, err := store.Upsert(ctx, userID, "Budi S.", "212410102002")
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if updated.Nama != "Budi S." {
		t.Errorf("nama after update: got %q", updated.Nama)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt must survive updates")
	}

	got, err := store.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Nama != "Budi S." {
		t.Errorf("Get after update: got %q", got.Nama)
	}
}

func TestGet_Missing(t *testing.T) {
	store := profilestore.NewMemory()

	_, err := store.Get(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, profilestore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestUpsert_Validation(t *testing.T) {
	store := profilestore.NewMemory()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if _, err := store.Upsert(ctx, userID, "   ", "212410102002"); !errors.Is(err, profilestore.ErrValidation) {
		t.Errorf("blank nama: got %v, want ErrValidation", err)
	}
	if _, err := store.Upsert(ctx, userID, "Budi", ""); !errors.Is(err, profilestore.ErrValidation) {
		t.Errorf("empty nim: got %v, want ErrValidation", err)
	}
}
