package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSweeper struct {
	mu    sync.Mutex
	days  []time.Time
	calls chan struct{}
	err   error
}

func (s *countingSweeper) RunBirthdaySweep(_ context.Context, today time.Time) error {
	s.mu.Lock()
	s.days = append(s.days, today)
	s.mu.Unlock()
	select {
	case s.calls <- struct{}{}:
	default:
	}
	return s.err
}

func TestSchedulerSweepsImmediatelyAndOnTick(t *testing.T) {
	sweeper := &countingSweeper{calls: make(chan struct{}, 16), err: errors.New("ignored")}
	s := NewScheduler(sweeper, 10*time.Millisecond, zap.NewNop())
	s.now = func() time.Time { return time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-sweeper.calls:
		case <-time.After(2 * time.Second):
			t.Fatalf("sweep %d did not run", i+1)
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	sweeper.mu.Lock()
	defer sweeper.mu.Unlock()
	require.GreaterOrEqual(t, len(sweeper.days), 2)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), sweeper.days[0])
}
