// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher reloads the catalog on a cron schedule.
type Refresher struct {
	scheduler *cron.Cron
}

// NewRefresher schedules catalog refreshes. schedule accepts the standard
// five-field syntax and descriptors such as "@every 6h".
func NewRefresher(context context.Context, catalog *Catalog, schedule string, logger *slog.Logger) (*Refresher, error) {
	scheduler := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	_, err := scheduler.AddFunc(schedule, func() {
		if _, err := catalog.Refresh(context); err != nil {
			logger.ErrorContext(context, "image_catalog_refresh_failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("assets: invalid refresh schedule %q: %w", schedule, err)
	}

	return &Refresher{scheduler: scheduler}, nil
}

// Start runs the scheduler in its own goroutine.
func (refresher *Refresher) Start() {
	refresher.scheduler.Start()
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (refresher *Refresher) Stop() {
	<-refresher.scheduler.Stop().Done()
}
