package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BirthdaySweeper runs one birthday sweep for a day.
type BirthdaySweeper interface {
	RunBirthdaySweep(ctx context.Context, today time.Time) error
}

// Scheduler triggers the birthday sweep periodically. Sweeps do not overlap
// within one process; across processes only the per-day check applies.
type Scheduler struct {
	sweeper BirthdaySweeper
	log     *zap.Logger
	tick    time.Duration
	now     func() time.Time
}

func NewScheduler(sweeper BirthdaySweeper, tick time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{sweeper: sweeper, log: log, tick: tick, now: time.Now}
}

// Run sweeps once immediately and then on every tick, blocking until ctx is
// cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := s.sweeper.RunBirthdaySweep(ctx, today); err != nil && ctx.Err() == nil {
		s.log.Error("birthday sweep failed", zap.Error(err))
	}
}
