package service

import (
	"context"
	"log/slog"
	"time"
)

type Evictor interface {
	EvictIdle(maxIdle time.Duration) int
}

// Sweeper periodically drops game sessions that have been idle for longer than maxIdle.
type Sweeper struct {
	logger   *slog.Logger
	interval time.Duration
	maxIdle  time.Duration
	evictors []Evictor
}

func NewSweeper(logger *slog.Logger, interval, maxIdle time.Duration, evictors ...Evictor) *Sweeper {
	return &Sweeper{
		logger:   logger.With("component", "sweeper"),
		interval: interval,
		maxIdle:  maxIdle,
		evictors: evictors,
	}
}

// Run sweeps until ctx is done.
func (that *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := that.Sweep(); evicted > 0 {
				that.logger.Info("evicted idle sessions", "count", evicted)
			}
		}
	}
}

func (that *Sweeper) Sweep() int {
	evicted := 0
	for _, evictor := range that.evictors {
		evicted += evictor.EvictIdle(that.maxIdle)
	}

	return evicted
}
