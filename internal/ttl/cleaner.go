package ttl

import (
	"context"
	"time"

	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
)

// Store is anything holding records that can expire.
type Store interface {
	RemoveExpired() int
}

// Cleaner periodically sweeps expired per-session state.
type Cleaner struct {
	store    Store
	interval time.Duration
	logger   *logs.ComponentLogger
	metrics  *metrics.Registry
}

func NewCleaner(
	store Store,
	interval time.Duration,
	logger *logs.Logger,
	metricsRegistry *metrics.Registry,
) *Cleaner {
	return &Cleaner{
		store:    store,
		interval: interval,
		logger:   logger.With("sweeper"),
		metrics:  metricsRegistry,
	}
}

// Start blocks running sweeps until ctx is cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.runOnce()
		case <-ctx.Done():
			c.logger.Debugf("session sweeper stopped")
			return
		}
	}
}

func (c *Cleaner) runOnce() int {
	removed := c.store.RemoveExpired()
	c.metrics.Inc(metrics.SessionSweepRunsTotal)
	if removed > 0 {
		c.logger.Infof("removed %d expired sessions", removed)
	}
	return removed
}
