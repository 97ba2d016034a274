package reportstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/projectrefind/refind/internal/app/system/auth"
	reportstore "github.com/projectrefind/refind/internal/app/store/reports"
	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testFields() reportstore.Fields {
	return reportstore.Fields{
		ItemName:        "Dompet",
		ItemDescription: "Dompet kulit warna coklat",
		Location:        "Kantin",
		PhoneNumber:     "0812",
	}
}

func TestCreate_ThenListAll(t *testing.T) {
	store := reportstore.NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, models.Lost, testFields(), "a@student.unej.ac.id")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if created.IsCompleted {
		t.Error("new report must not be completed")
	}
	if created.Collection != models.Lost {
		t.Errorf("collection: got %q, want %q", created.Collection, models.Lost)
	}

	all, err := store.ListAll(ctx, models.Lost)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ListAll returned %d reports, want 1", len(all))
	}
	got := all[0]
	if got.ID != created.ID {
		t.Errorf("id: got %v, want %v", got.ID, created.ID)
	}
	if got.ItemName != "Dompet" || got.Location != "Kantin" || got.PhoneNumber != "0812" {
		t.Errorf("fields not intact: %+v", got)
	}
	if got.OwnerEmail != "a@student.unej.ac.id" {
		t.Errorf("owner: got %q", got.OwnerEmail)
	}

	// The other collection stays empty.
	found, err := store.ListAll(ctx, models.Found)
	if err != nil {
		t.Fatalf("ListAll(found) failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("found collection should be empty, got %d", len(found))
	}
}

func TestCreate_RequiresOwner(t *testing.T) {
	store := reportstore.NewMemory()

	_, err := store.Create(context.Background(), models.Lost, testFields(), "")
	if !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Errorf("got %v, want ErrNotAuthenticated", err)
	}
}

func TestCreate_ValidatesRequiredFields(t *testing.T) {
	store := reportstore.NewMemory()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*reportstore.Fields)
	}{
		{"empty item name", func(f *reportstore.Fields) { f.ItemName = "" }},
		{"blank description", func(f *reportstore.Fields) { f.ItemDescription = "   " }},
		{"empty location", func(f *reportstore.Fields) { f.Location = "" }},
		{"empty phone", func(f *reportstore.Fields) { f.PhoneNumber = "" }},
		{"markup-only name", func(f *reportstore.Fields) { f.ItemName = "<script>x()</script>" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := testFields()
			tc.mutate(&f)
			_, err := store.Create(ctx, models.Lost, f, "a@x.id")
			if !errors.Is(err, reportstore.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreate_StripsMarkup(t *testing.T) {
	store := reportstore.NewMemory()
	f := testFields()
	f.ItemDescription = "<b>Dompet</b> kulit"

	created, err := store.Create(context.Background(), models.Found, f, "a@x.id")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ItemDescription != "Dompet kulit" {
		t.Errorf("description: got %q, want %q", created.ItemDescription, "Dompet kulit")
	}
}

func TestSetCompleted_Idempotent(t *testing.T) {
	store := reportstore.NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, models.Lost, testFields(), "a@x.id")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetCompleted(ctx, models.Lost, created.ID); err != nil {
		t.Fatalf("first SetCompleted failed: %v", err)
	}
	if err := store.SetCompleted(ctx, models.Lost, created.ID); err != nil {
		t.Fatalf("second SetCompleted failed: %v", err)
	}

	all, err := store.ListAll(ctx, models.Lost)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if !all[0].IsCompleted {
		t.Error("report should be completed")
	}
}

func TestSetCompleted_UnknownID(t *testing.T) {
	store := reportstore.NewMemory()

	err := store.SetCompleted(context.Background(), models.Lost, primitive.NewObjectID())
	if !errors.Is(err, reportstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSetCompleted_ScopedToCollection(t *testing.T) {
	store := reportstore.NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, models.Lost, testFields(), "a@x.id")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The same id does not exist in the other collection.
	err = store.SetCompleted(ctx, models.Found, created.ID)
	if !errors.Is(err, reportstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	store := reportstore.NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, models.Found, testFields(), "a@x.id")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, models.Found, created.ID); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	// Deleting an absent id is success by design.
	if err := store.Delete(ctx, models.Found, created.ID); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}

	all, err := store.ListAll(ctx, models.Found)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	for _, rep := range all {
		if rep.ID == created.ID {
			t.Error("deleted report still listed")
		}
	}
}

func TestListByOwner(t *testing.T) {
	store := reportstore.NewMemory()
	ctx := context.Background()

	if _, err := store.Create(ctx, models.Lost, testFields(), "a@x.id"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Lost, testFields(), "b@x.id"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mine, err := store.ListByOwner(ctx, models.Lost, "a@x.id")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("got %d reports, want 1", len(mine))
	}
	if mine[0].OwnerEmail != "a@x.id" {
		t.Errorf("owner: got %q", mine[0].OwnerEmail)
	}

	// Exact, case-sensitive match.
	upper, err := store.ListByOwner(ctx, models.Lost, "A@x.id")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(upper) != 0 {
		t.Errorf("owner scoping must be case-sensitive, got %d rows", len(upper))
	}
}
