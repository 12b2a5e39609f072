// Package stats keeps the project-status gauge current so the /metrics
// endpoint reflects the store without a query per scrape.
package stats

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"projectboard/internal/model"
	"projectboard/pkg/metrics"
)

type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type Refresher struct {
	store  StatusCounter
	cron   *cron.Cron
	logger *zap.Logger
}

func NewRefresher(store StatusCounter, logger *zap.Logger) *Refresher {
	return &Refresher{
		store:  store,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start refreshes once immediately, then every minute.
func (r *Refresher) Start() error {
	r.Refresh()
	if _, err := r.cron.AddFunc("@every 1m", r.Refresh); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("Status gauge refresher started")
	return nil
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := r.store.CountByStatus(ctx)
	if err != nil {
		r.logger.Warn("Failed to refresh status gauge", zap.Error(err))
		return
	}

	// Publish zero for absent statuses so the gauge drops back down.
	for _, status := range []string{model.StatusPending, model.StatusInProgress, model.StatusCompleted} {
		metrics.SetProjectStatusCount(status, counts[status])
	}
}
