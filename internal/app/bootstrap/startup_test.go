package bootstrap

import (
	"context"
	"testing"

	userstore "github.com/projectrefind/refind/internal/app/store/users"
	"github.com/projectrefind/refind/internal/domain/models"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestPromoteConfiguredAdmin_PromotesExisting(t *testing.T) {
	users := userstore.NewMemory()
	ctx := context.Background()

	u, err := users.Create(ctx, models.User{
		Email:        "admin@unej.ac.id",
		PasswordHash: "x",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	if err := promoteConfiguredAdmin(ctx, users, "admin@unej.ac.id", testLogger()); err != nil {
		t.Fatalf("promoteConfiguredAdmin failed: %v", err)
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestPromoteConfiguredAdmin_CaseInsensitiveEmail(t *testing.T) {
	users := userstore.NewMemory()
	ctx := context.Background()

	u, err := users.Create(ctx, models.User{
		Email:        "admin@unej.ac.id",
		PasswordHash: "x",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	if err := promoteConfiguredAdmin(ctx, users, "Admin@UNEJ.ac.id", testLogger()); err != nil {
		t.Fatalf("promoteConfiguredAdmin failed: %v", err)
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestPromoteConfiguredAdmin_MissingAccountIsNoOp(t *testing.T) {
	users := userstore.NewMemory()

	// Registration promotes the account when it eventually appears.
	if err := promoteConfiguredAdmin(context.Background(), users, "admin@unej.ac.id", testLogger()); err != nil {
		t.Fatalf("promoteConfiguredAdmin failed for absent account: %v", err)
	}
}

func TestPromoteConfiguredAdmin_BlankEmailDisabled(t *testing.T) {
	users := userstore.NewMemory()
	ctx := context.Background()

	u, err := users.Create(ctx, models.User{
		Email:        "someone@unej.ac.id",
		PasswordHash: "x",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	if err := promoteConfiguredAdmin(ctx, users, "", testLogger()); err != nil {
		t.Fatalf("promoteConfiguredAdmin failed: %v", err)
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if got.Role != models.RoleUser {
		t.Errorf("role changed with promotion disabled: got %q", got.Role)
	}
}
