package aggregate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/projectrefind/refind/internal/app/aggregate"
	reportstore "github.com/projectrefind/refind/internal/app/store/reports"
	"github.com/projectrefind/refind/internal/domain/models"
	"go.uber.org/zap"
)

func seed(t *testing.T, store *reportstore.Memory, col models.Collection, name, owner string) models.Report {
	t.Helper()
	r, err := store.Create(context.Background(), col, reportstore.Fields{
		ItemName:        name,
		ItemDescription: "desc",
		Location:        "Kantin",
		PhoneNumber:     "0812",
	}, owner)
	if err != nil {
		t.Fatalf("seed %s/%s: %v", col, name, err)
	}
	return r
}

func TestCombinedView_LostBeforeFound(t *testing.T) {
	store := reportstore.NewMemory()
	agg := aggregate.New(store, zap.NewNop())
	ctx := context.Background()

	seed(t, store, models.Found, "Kunci", "a@x.id")
	seed(t, store, models.Lost, "Dompet", "a@x.id")
	seed(t, store, models.Lost, "Botol", "b@x.id")

	got, err := agg.CombinedView(ctx, "", "")
	if err != nil {
		t.Fatalf("CombinedView failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d reports, want 3", len(got))
	}
	wantOrder := []string{"Dompet", "Botol", "Kunci"}
	for i, name := range wantOrder {
		if got[i].ItemName != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].ItemName, name)
		}
	}
	if got[0].Collection != models.Lost || got[2].Collection != models.Found {
		t.Error("collection tags wrong in merged view")
	}
}

func TestCombinedView_Filter(t *testing.T) {
	store := reportstore.NewMemory()
	agg := aggregate.New(store, zap.NewNop())
	ctx := context.Background()

	seed(t, store, models.Lost, "Dompet Coklat", "a@x.id")
	seed(t, store, models.Found, "dompet hitam", "b@x.id")
	seed(t, store, models.Lost, "Kunci", "a@x.id")

	got, err := agg.CombinedView(ctx, "  DOMPET ", "")
	if err != nil {
		t.Fatalf("CombinedView failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reports, want 2", len(got))
	}
	for _, r := range got {
		if r.ItemName == "Kunci" {
			t.Error("filter leaked a non-matching report")
		}
	}
}

func TestCombinedView_OwnerScopedThenFiltered(t *testing.T) {
	store := reportstore.NewMemory()
	agg := aggregate.New(store, zap.NewNop())
	ctx := context.Background()

	seed(t, store, models.Lost, "Dompet", "a@x.id")
	seed(t, store, models.Lost, "Dompet", "b@x.id")
	seed(t, store, models.Found, "Kunci", "a@x.id")

	got, err := agg.CombinedView(ctx, "dompet", "a@x.id")
	if err != nil {
		t.Fatalf("CombinedView failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d reports, want 1", len(got))
	}
	if got[0].OwnerEmail != "a@x.id" || got[0].ItemName != "Dompet" {
		t.Errorf("wrong report: %+v", got[0])
	}
}

func TestCombinedView_FailsWhenEitherCollectionFails(t *testing.T) {
	store := reportstore.NewMemory()
	agg := aggregate.New(store, zap.NewNop())
	ctx := context.Background()

	seed(t, store, models.Lost, "Dompet", "a@x.id")
	boom := errors.New("connection reset")
	store.FailListWith(models.Found, boom)

	_, err := agg.CombinedView(ctx, "", "")
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want the listing error", err)
	}
}

func TestHistory_OwnerScoped(t *testing.T) {
	store := reportstore.NewMemory()
	agg := aggregate.New(store, zap.NewNop())
	ctx := context.Background()

	seed(t, store, models.Lost, "Dompet", "a@x.id")
	seed(t, store, models.Found, "Kunci", "a@x.id")
	seed(t, store, models.Lost, "Botol", "b@x.id")

	got, err := agg.History(ctx, "a@x.id")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reports, want 2", len(got))
	}
	if got[0].ItemName != "Dompet" || got[1].ItemName != "Kunci" {
		t.Errorf("history order: %q then %q", got[0].ItemName, got[1].ItemName)
	}
	for _, r := range got {
		if r.OwnerEmail != "a@x.id" {
			t.Errorf("foreign report in history: %+v", r)
		}
	}
}

func TestRefresh_KeepsSnapshotOnFailure(t *testing.T) {
	store := reportstore.NewMemory()
	agg := aggregate.New(store, zap.NewNop())
	ctx := context.Background()

	seed(t, store, models.Lost, "Dompet", "a@x.id")

	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	snap, at := agg.Snapshot()
	if len(snap) != 1 || at.IsZero() {
		t.Fatalf("snapshot after refresh: %d reports, at=%v", len(snap), at)
	}

	// A later failed refresh must not touch the snapshot.
	seed(t, store, models.Found, "Kunci", "b@x.id")
	store.FailListWith(models.Found, errors.New("timeout"))

	if err := agg.Refresh(ctx); err == nil {
		t.Fatal("Refresh should have failed")
	}
	snap2, at2 := agg.Snapshot()
	if len(snap2) != 1 {
		t.Errorf("snapshot changed after failed refresh: %d reports", len(snap2))
	}
	if !at2.Equal(at) {
		t.Error("refresh time changed after failed refresh")
	}

	// Once the store recovers, the snapshot catches up.
	store.FailListWith(models.Found, nil)
	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh after recovery failed: %v", err)
	}
	snap3, _ := agg.Snapshot()
	if len(snap3) != 2 {
		t.Errorf("snapshot after recovery: %d reports, want 2", len(snap3))
	}
}

func TestSnapshot_CopyIsolated(t *testing.T) {
	store := reportstore.NewMemory()
	agg := aggregate.New(store, zap.NewNop())
	ctx := context.Background()

	seed(t, store, models.Lost, "Dompet", "a@x.id")
	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	snap, _ := agg.Snapshot()
	snap[0].ItemName = "mutated"

	again, _ := agg.Snapshot()
	if again[0].ItemName != "Dompet" {
		t.Error("snapshot mutated through a returned copy")
	}
}
