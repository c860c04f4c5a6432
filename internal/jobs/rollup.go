// Package jobs hosts background schedules. The daily rollup is pure
// observability: it logs and exports yesterday's visit count shortly after
// midnight in the same fixed offset the data is bucketed by.
package jobs

import (
	"github.com/robfig/cron/v3"

	"github.com/Godasy/visitor-management-system/internal/localtime"
	"github.com/Godasy/visitor-management-system/internal/logger"
	"github.com/Godasy/visitor-management-system/internal/metrics"
	"github.com/Godasy/visitor-management-system/internal/store"
)

// Rollup publishes the previous day's visit count once per day.
type Rollup struct {
	store *store.VisitStore
	clock *localtime.Formatter
	cron  *cron.Cron
}

func NewRollup(st *store.VisitStore, clock *localtime.Formatter) *Rollup {
	return &Rollup{
		store: st,
		clock: clock,
		cron:  cron.New(cron.WithLocation(clock.Location())),
	}
}

// Start schedules the rollup at 00:05 local-offset time and begins the cron.
func (r *Rollup) Start() error {
	if _, err := r.cron.AddFunc("5 0 * * *", r.run); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the scheduler; a rollup already in flight completes.
func (r *Rollup) Stop() {
	r.cron.Stop()
}

func (r *Rollup) run() {
	count, err := r.runOnce()
	if err != nil {
		logger.Log().WithError(err).Error("daily visit rollup failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"date":   r.clock.DaysAgo(1),
		"visits": count,
	}).Info("daily visit rollup")
}

func (r *Rollup) runOnce() (int64, error) {
	count, err := r.store.CountValidVisitsOnDate(r.clock.DaysAgo(1))
	if err != nil {
		return 0, err
	}
	metrics.SetVisitsYesterday(float64(count))
	return count, nil
}
