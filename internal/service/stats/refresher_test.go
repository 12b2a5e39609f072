package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"projectboard/pkg/metrics"
)

type fakeCounter struct {
	counts map[string]int
	err    error
}

func (f *fakeCounter) CountByStatus(context.Context) (map[string]int, error) {
	return f.counts, f.err
}

func TestRefreshPublishesAllStatuses(t *testing.T) {
	store := &fakeCounter{counts: map[string]int{"Pending": 3, "Completed": 1}}
	r := NewRefresher(store, zap.NewNop())

	r.Refresh()

	if got := testutil.ToFloat64(metrics.ProjectStatusCount.WithLabelValues("Pending")); got != 3 {
		t.Fatalf("expected 3 pending, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.ProjectStatusCount.WithLabelValues("Completed")); got != 1 {
		t.Fatalf("expected 1 completed, got %v", got)
	}
	// Absent statuses are reset to zero rather than left stale.
	if got := testutil.ToFloat64(metrics.ProjectStatusCount.WithLabelValues("In Progress")); got != 0 {
		t.Fatalf("expected 0 in progress, got %v", got)
	}
}

func TestRefreshKeepsGaugeOnStoreFailure(t *testing.T) {
	r := NewRefresher(&fakeCounter{counts: map[string]int{"Pending": 2}}, zap.NewNop())
	r.Refresh()

	r.store = &fakeCounter{err: errors.New("connection refused")}
	r.Refresh()

	if got := testutil.ToFloat64(metrics.ProjectStatusCount.WithLabelValues("Pending")); got != 2 {
		t.Fatalf("gauge changed on failure: %v", got)
	}
}
