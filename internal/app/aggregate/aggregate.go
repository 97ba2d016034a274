// Package aggregate produces the cross-collection views: the admin
// dashboard's combined list over lost and found reports, and the
// per-user history. It also maintains a periodic snapshot of the
// combined view so the dashboard stays usable while the store is
// briefly unreachable.
package aggregate

import (
	"context"
	"strings"
	"sync"
	"time"

	reportstore "github.com/projectrefind/refind/internal/app/store/reports"
	"github.com/projectrefind/refind/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"
)

// Aggregator reads both report collections and merges them. Lost
// reports always precede found reports in merged output; within a
// collection the store's chronological order is preserved.
type Aggregator struct {
	store reportstore.Store
	log   *zap.Logger

	mu          sync.RWMutex
	snapshot    []models.Report
	refreshedAt time.Time
}

// New creates an aggregator over the given report store.
func New(store reportstore.Store, log *zap.Logger) *Aggregator {
	return &Aggregator{store: store, log: log}
}

// fetchBoth lists both collections concurrently and joins the results,
// lost first. Either listing failing fails the whole fetch; a partial
// merge would silently hide half the reports.
func (a *Aggregator) fetchBoth(ctx context.Context, list func(context.Context, models.Collection) ([]models.Report, error)) ([]models.Report, error) {
	var (
		wg       sync.WaitGroup
		lost     []models.Report
		found    []models.Report
		lostErr  error
		foundErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		lost, lostErr = list(ctx, models.Lost)
	}()
	go func() {
		defer wg.Done()
		found, foundErr = list(ctx, models.Found)
	}()
	wg.Wait()

	if lostErr != nil {
		return nil, lostErr
	}
	if foundErr != nil {
		return nil, foundErr
	}

	merged := make([]models.Report, 0, len(lost)+len(found))
	merged = append(merged, lost...)
	merged = append(merged, found...)
	return merged, nil
}

// CombinedView returns reports across both collections. A non-empty
// ownerEmail scopes the view to that owner with an exact match, pushed
// down to the store's owner query; a non-empty filter then narrows by a
// case-insensitive substring match on the item name.
func (a *Aggregator) CombinedView(ctx context.Context, filter, ownerEmail string) ([]models.Report, error) {
	list := a.store.ListAll
	if ownerEmail != "" {
		list = func(ctx context.Context, col models.Collection) ([]models.Report, error) {
			return a.store.ListByOwner(ctx, col, ownerEmail)
		}
	}
	merged, err := a.fetchBoth(ctx, list)
	if err != nil {
		return nil, err
	}
	return FilterByName(merged, filter), nil
}

// History returns the owner's reports across both collections, lost
// first. Scoping is enforced here, not in the handler.
func (a *Aggregator) History(ctx context.Context, ownerEmail string) ([]models.Report, error) {
	return a.CombinedView(ctx, "", ownerEmail)
}

// Refresh re-reads both collections and replaces the snapshot in one
// step. On any failure the previous snapshot is retained untouched.
func (a *Aggregator) Refresh(ctx context.Context) error {
	merged, err := a.fetchBoth(ctx, a.store.ListAll)
	if err != nil {
		a.log.Warn("combined view refresh failed; keeping previous snapshot", zap.Error(err))
		return err
	}

	a.mu.Lock()
	a.snapshot = merged
	a.refreshedAt = time.Now().UTC()
	a.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the last successfully refreshed combined
// view and when it was taken. Before the first successful Refresh the
// slice is empty and the time is zero.
func (a *Aggregator) Snapshot() ([]models.Report, time.Time) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]models.Report, len(a.snapshot))
	copy(out, a.snapshot)
	return out, a.refreshedAt
}

// RunRefresh refreshes the snapshot on the given interval until the
// context is cancelled. Failures are logged and retried on the next
// tick.
func (a *Aggregator) RunRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Prime the snapshot before the first tick.
	_ = a.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = a.Refresh(ctx)
		}
	}
}

// FilterByName narrows reports to those whose folded item name contains
// the folded filter. An empty filter matches everything.
func FilterByName(reports []models.Report, filter string) []models.Report {
	needle := text.Fold(strings.TrimSpace(filter))
	if needle == "" {
		return reports
	}
	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(r.ItemNameCI, needle) {
			out = append(out, r)
		}
	}
	return out
}
