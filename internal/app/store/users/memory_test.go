package userstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/projectrefind/refind/internal/app/system/auth"
	userstore "github.com/projectrefind/refind/internal/app/store/users"
	"github.com/projectrefind/refind/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_Defaults(t *testing.T) {
	store := userstore.NewMemory()

	u, err := store.Create(context.Background(), models.User{
		Email:        "Budi@Student.Unej.AC.ID",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.Email != "budi@student.unej.ac.id" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.Role != models.RoleUser {
		t.Errorf("role: got %q, want %q", u.Role, models.RoleUser)
	}
	if u.Status != models.StatusActive {
		t.Errorf("status: got %q, want %q", u.Status, models.StatusActive)
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	store := userstore.NewMemory()
	ctx := context.Background()

	if _, err := store.Create(ctx, models.User{Email: "budi@x.id"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{Email: "BUDI@x.id"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	store := userstore.NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, models.User{Email: "budi@x.id"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "  BUDI@X.ID  ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("id: got %v, want %v", got.ID, created.ID)
	}

	if _, err := store.GetByEmail(ctx, "nobody@x.id"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	store := userstore.NewMemory()
	ctx := context.Background()

	// Missing account is not an error.
	if err := store.EnsureAdmin(ctx, "admin@unej.ac.id"); err != nil {
		t.Fatalf("EnsureAdmin(missing) failed: %v", err)
	}

	created, err := store.Create(ctx, models.User{Email: "admin@unej.ac.id"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Role != models.RoleUser {
		t.Fatalf("precondition: role should be user, got %q", created.Role)
	}

	if err := store.EnsureAdmin(ctx, "Admin@Unej.AC.ID"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleAdmin)
	}
	if !got.IsAdmin() {
		t.Error("IsAdmin should be true after promotion")
	}
}

func TestFetcher(t *testing.T) {
	store := userstore.NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, models.User{Email: "budi@x.id"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	fetcher := userstore.NewFetcher(store)

	su, err := fetcher.FetchByID(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("FetchByID failed: %v", err)
	}
	if su == nil {
		t.Fatal("expected a session user")
	}
	if su.Email != "budi@x.id" || su.Role != models.RoleUser {
		t.Errorf("session user: %+v", su)
	}
	var _ auth.UserFetcher = fetcher

	// Garbage id proceeds unauthenticated, not as an error.
	su, err = fetcher.FetchByID(ctx, "not-an-object-id")
	if err != nil || su != nil {
		t.Errorf("garbage id: got (%v, %v), want (nil, nil)", su, err)
	}

	// Unknown id likewise.
	su, err = fetcher.FetchByID(ctx, primitive.NewObjectID().Hex())
	if err != nil || su != nil {
		t.Errorf("unknown id: got (%v, %v), want (nil, nil)", su, err)
	}

	// Disabled accounts stop resolving.
	store.SetStatus(created.ID, models.StatusDisabled)
	su, err = fetcher.FetchByID(ctx, created.ID.Hex())
	if err != nil || su != nil {
		t.Errorf("disabled account: got (%v, %v), want (nil, nil)", su, err)
	}
}
