package testutil

import (
	"context"
	"testing"
	"time"

	profilestore "github.com/projectrefind/refind/internal/app/store/profiles"
	reportstore "github.com/projectrefind/refind/internal/app/store/reports"
	userstore "github.com/projectrefind/refind/internal/app/store/users"
	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/domain/models"
	"go.uber.org/zap"
)

// Fixtures bundles the in-memory stores handler tests run against.
type Fixtures struct {
	t        *testing.T
	Reports  *reportstore.Memory
	Users    *userstore.Memory
	Profiles *profilestore.Memory
}

// NewFixtures creates empty in-memory stores.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:        t,
		Reports:  reportstore.NewMemory(),
		Users:    userstore.NewMemory(),
		Profiles: profilestore.NewMemory(),
	}
}

// CreateReport seeds a report owned by ownerEmail.
func (f *Fixtures) CreateReport(ctx context.Context, col models.Collection, itemName, ownerEmail string) models.Report {
	f.t.Helper()
	r, err := f.Reports.Create(ctx, col, reportstore.Fields{
		ItemName:        itemName,
		ItemDescription: "test description",
		Location:        "Kantin FMIPA",
		PhoneNumber:     "081234567890",
	}, ownerEmail)
	if err != nil {
		f.t.Fatalf("failed to create test report: %v", err)
	}
	return r
}

// CreateUser seeds an account with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()
	u, err := f.Users.Create(ctx, models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
	})
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// NewSessionManager builds a session manager with fixed test keys and a
// one-hour token lifetime.
func NewSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	tokens := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "refind_session", "", false, tokens, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to build session manager: %v", err)
	}
	return sm
}
